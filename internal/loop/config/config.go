// Package config centralizes the session and rendering constants.
package config

import "time"

// View resolution in logical units. Rendering scales to the terminal.
// ViewHeight matches the default play area height of the balloon motion.
const (
	ViewWidth  = 120
	ViewHeight = 80 // Sub-pixels, so 40 terminal rows at full size
)

// Largest canvas drawn, in terminal cells. Bigger terminals get a border.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
	HUDRows       = 3 // Rows below the canvas for prompt, status and typed answer
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
	MaxTypedLength    = 32 // Longest typed answer kept
	TopScoreCount     = 5  // Leaderboard entries kept and shown
)

// Pop effect
const (
	PopParticles = 24
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate. Engines are advanced by the measured frame delta, so
// this only sets the granularity of motion and timers.
const (
	ServerTickRate = 20
	ServerTickTime = time.Second / ServerTickRate
)
