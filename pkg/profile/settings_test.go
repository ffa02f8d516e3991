package profile

import "testing"

func TestSettingsCommand(t *testing.T) {
	tests := []struct {
		desktop string
		want    string
	}{
		{"GNOME", "gnome-control-center"},
		{"ubuntu:GNOME", "gnome-control-center"},
		{"KDE", "systemsettings"},
		{"XFCE", "xfce4-power-manager-settings"},
		{"", "gnome-control-center"},
		{"LXQt", "gnome-control-center"},
	}

	for _, tt := range tests {
		t.Run("desktop="+tt.desktop, func(t *testing.T) {
			t.Setenv("XDG_CURRENT_DESKTOP", tt.desktop)
			got := SettingsCommand()
			if got[0] != tt.want {
				t.Fatalf("SettingsCommand()[0] = %q, want %q", got[0], tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	for _, name := range Available() {
		if !Valid(name) {
			t.Errorf("Valid(%q) = false, want true", name)
		}
	}
	if Valid("turbo") {
		t.Error(`Valid("turbo") = true, want false`)
	}
}
