package config

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Starfield - drag to steer, R: reset, H: panel, P: pause, S: capture, Esc/Q: quit"
	DefaultTPS   = 60

	// Surface
	MaxPixelRatio = 2.0
	MaxFrameMs    = 50.0

	// Stars
	StarWrapMargin     = 5.0
	StarGlowScale      = 2.2
	StarDriftFactor    = 0.12
	StarReaimChance    = 0.002
	StarHueMin         = 200.0
	StarHueSpan        = 40.0
	StarPhaseSpeed     = 0.002
	StarRadiusMin      = 0.7
	StarRadiusSpan     = 0.6
	StarDensityMin     = 1.0
	StarDensitySpan    = 30.0
	DriftBiasPerPixel  = 0.002
	RepelEaseDivisor   = 20.0
	RepelEaseFrameMs   = 1000.0 / 60.0
	RepelSpringFreq    = 6.0
	RepelSpringDamping = 1.0

	// Meteors
	MeteorBaseIntervalMs = 900.0
	MeteorMaxAgeMs       = 5000.0
	MeteorMargin         = 100.0
	MeteorTrailCap       = 24
	MeteorSpeedMin       = 0.55
	MeteorSpeedSpan      = 0.5
	MeteorHueMin         = 190.0
	MeteorHueSpan        = 40.0
	MeteorLengthMin      = 80.0
	MeteorLengthSpan     = 120.0
	MeteorHeading        = 0.75 * 3.141592653589793
	MeteorHeadingJitter  = 0.25

	// Gesture spawning
	GestureMinDistSq  = 16.0
	GestureVelocity   = 0.06
	GestureMaxSpeed   = 2.5
	DefaultMaxMeteors = 10

	// Panel
	PanelWidth    = 260
	PanelRowH     = 34
	PanelPadding  = 12
	PanelFontSize = 13
	PanelTrackH   = 4
	PanelKnobR    = 6
	PanelButtonH  = 28
	PanelValueW   = 72
	PanelEditMax  = 8

	// Rendering
	GlowTextureSize = 64
	BackgroundR     = 3
	BackgroundG     = 5
	BackgroundB     = 14

	// Sound cue
	CueSampleRate = 44100
	CueDurationMs = 420
	CueVariants   = 4
	CueMinGapMs   = 120
	CueVolume     = -1.5

	// Diagnostics
	StatsIntervalMs = 1000
	CapturePrefix   = "starfield"
)
