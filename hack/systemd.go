// Package hack holds build and packaging assets that are embedded into
// the battray binary.
package hack

// DaemonUnitTemplate is the systemd user unit for the battray daemon.
// The /path/to/battray placeholder is replaced with the installed
// executable path at install time.
const DaemonUnitTemplate = `[Unit]
Description=battray battery daemon
Documentation=https://github.com/tlind/battray

[Service]
Type=simple
ExecStart=/path/to/battray daemon
Restart=on-failure
RestartSec=5

[Install]
WantedBy=default.target
`

// TrayUnitTemplate is the systemd user unit for the battray tray icon.
// It waits for the graphical session so DISPLAY or WAYLAND_DISPLAY is
// set when the tray starts.
const TrayUnitTemplate = `[Unit]
Description=battray tray icon
Documentation=https://github.com/tlind/battray
After=graphical-session.target battray-daemon.service
PartOf=graphical-session.target

[Service]
Type=simple
ExecStart=/path/to/battray tray
Restart=on-failure
RestartSec=5

[Install]
WantedBy=graphical-session.target
`
