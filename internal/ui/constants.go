package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Window sizing
const (
	WindowWidth  float32 = 1100
	WindowHeight float32 = 720
)

// Layout sizing
const (
	LogoSize            float32 = 32
	RecordCornerRadius  float32 = 4
	SplitOffset                 = 0.5
	CompareEntryMinRows         = 8
	SettingsDialogW     float32 = 460
	SettingsDialogH     float32 = 240
)
