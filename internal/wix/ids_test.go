package wix

import "testing"

func TestFormatID(t *testing.T) {
	tests := []struct {
		in        string
		stripDots bool
		want      string
	}{
		{"gstreamer-core", false, "_gstreamer_core"},
		{"gst_plugins", false, "_gst__plugins"},
		{"a/b c@d+e", false, "_a_b_c_d_e"},
		{"libglib-2.0-0.dll", false, "_libglib_2.0_0.dll"},
		{"libglib-2.0-0.dll", true, "_libglib_20_0dll"},
		{"0.10", false, "_0.10"},
		{"", false, "_"},
	}
	for _, tt := range tests {
		if got := FormatID(tt.in, tt.stripDots); got != tt.want {
			t.Errorf("FormatID(%q, %v) = %q, want %q", tt.in, tt.stripDots, got, tt.want)
		}
	}
}

func TestPathIDCollisions(t *testing.T) {
	f := newIDFormatter()

	got := []string{
		f.pathID("bin/gst.dll", false),
		f.pathID("lib/gst.dll", false),
		f.pathID("lib/gst-1.0/gst.dll", false),
		f.pathID("share/a-b", false),
		f.pathID("share/a b", false),
	}
	want := []string{"_gst.dll", "_gst.dll_1", "_gst.dll_2", "_a_b", "_a_b_1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPathIDSuffixNeverReusesAnId(t *testing.T) {
	f := newIDFormatter()

	got := []string{
		f.pathID("x/a-1", false),
		f.pathID("x/a", false),
		f.pathID("y/a", false),
		f.pathID("z/a", false),
	}
	want := []string{"_a_1", "_a", "_a_2", "_a_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPathIDIsPerFormatter(t *testing.T) {
	a, b := newIDFormatter(), newIDFormatter()
	if a.pathID("bin/x.dll", false) != b.pathID("bin/x.dll", false) {
		t.Error("separate formatters should not share counters")
	}
}
