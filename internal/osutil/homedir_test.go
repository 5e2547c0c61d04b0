package osutil

import (
	"runtime"
	"testing"
)

func TestUserHomeDir(t *testing.T) {
	type testCase struct {
		name, home, userProfile, want string
	}

	tests := []testCase{
		{
			// Prefer $HOME on all platforms
			name:        "home set",
			home:        "home",
			userProfile: "userProfile",
			want:        "home",
		},
	}
	if runtime.GOOS == "windows" {
		// Windows can use %USERPROFILE% when $HOME is unavailable
		tests = append(tests, testCase{
			name:        "home empty",
			home:        "",
			userProfile: "userProfile",
			want:        "userProfile",
		})
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("HOME", test.home)
			t.Setenv("USERPROFILE", test.userProfile)

			got, err := UserHomeDir()
			if err != nil {
				t.Fatalf("UserHomeDir() error = %v", err)
			}
			if got != test.want {
				t.Errorf("HOME=%q USERPROFILE=%q UserHomeDir() = %q, want %q", test.home, test.userProfile, got, test.want)
			}
		})
	}
}
