package platform

import "testing"

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"windows", Windows, false},
		{"Linux", Linux, false},
		{" darwin ", Darwin, false},
		{"beos", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlatform(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseArchitectureAliases(t *testing.T) {
	tests := map[string]Architecture{
		"amd64":  X86_64,
		"386":    X86,
		"x86_64": X86_64,
		"arm64":  Arm64,
	}
	for in, want := range tests {
		got, err := ParseArchitecture(in)
		if err != nil {
			t.Fatalf("ParseArchitecture(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseArchitecture(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseArchitecture("sparc"); err == nil {
		t.Error("expected error for unknown architecture")
	}
}

func TestDistroVersionDistro(t *testing.T) {
	if got := DistroVersion("debian_squeeze").Distro(); got != DistroDebian {
		t.Errorf("Distro() = %q, want %q", got, DistroDebian)
	}
	if got := DistroVersion("windows_7").Distro(); got != DistroWindows {
		t.Errorf("Distro() = %q, want %q", got, DistroWindows)
	}
	if got := DistroVersion("nonsense").Distro(); got != "" {
		t.Errorf("Distro() = %q, want empty", got)
	}
}

func TestToWinePath(t *testing.T) {
	got := ToWinePath("/home/build/dist/bin/app.exe")
	want := `z:\home\build\dist\bin\app.exe`
	if got != want {
		t.Errorf("ToWinePath = %q, want %q", got, want)
	}
}

func TestPathTranslator(t *testing.T) {
	if got := PathTranslator(Windows)(`C:\dist`); got != `C:\dist` {
		t.Errorf("windows translator changed path: %q", got)
	}
	if got := PathTranslator(Linux)("/dist"); got != `z:\dist` {
		t.Errorf("linux translator = %q, want %q", got, `z:\dist`)
	}
}
