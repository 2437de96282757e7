package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid single path",
			cfg:  Config{Count: 4096, Paths: []string{"/dev/rpipe0"}},
		},
		{
			name:    "no paths",
			cfg:     Config{Count: 4096},
			wantErr: true,
		},
		{
			name:    "zero count",
			cfg:     Config{Count: 0, Paths: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "negative workers",
			cfg:     Config{Count: 1, Workers: -1, Paths: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "follow with multiple paths",
			cfg:     Config{Count: 1, Follow: true, Paths: []string{"a", "b"}},
			wantErr: true,
		},
		{
			name:    "follow with hex",
			cfg:     Config{Count: 1, Follow: true, Hex: true, Paths: []string{"a"}},
			wantErr: true,
		},
		{
			name: "follow with single path",
			cfg:  Config{Count: 1, Follow: true, Paths: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rpiperc")
	content := "# defaults\n-x\n\n--color\nnever\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RPIPE_CONFIG_PATH", path)

	args := LoadConfigArgs()
	want := []string{"-x", "--color", "never"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestLoadConfigArgs_Missing(t *testing.T) {
	t.Setenv("RPIPE_CONFIG_PATH", filepath.Join(t.TempDir(), "absent"))
	if args := LoadConfigArgs(); args != nil {
		t.Errorf("args = %v, want nil for missing config file", args)
	}
}
