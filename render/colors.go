package render

import "github.com/gdamore/tcell/v2"

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(120, 130, 160) // Window frame
	RgbArena      = tcell.NewRGBColor(60, 60, 80)    // Arena fence
	RgbGround     = tcell.NewRGBColor(40, 44, 64)    // Window interior
	RgbVisited    = tcell.NewRGBColor(36, 56, 52)    // Interior of a visited window

	RgbPlayer     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPlayerDead = tcell.NewRGBColor(255, 0, 0)     // Red
	RgbCharge     = tcell.NewRGBColor(255, 255, 0)   // Charge bar and jump marker
	RgbFile       = tcell.NewRGBColor(100, 150, 255) // Intact file
	RgbFileGlitch = tcell.NewRGBColor(255, 80, 255)  // Touched file
	RgbSweeper    = tcell.NewRGBColor(0, 200, 0)     // Antivirus band

	RgbHudText    = tcell.NewRGBColor(255, 255, 255)
	RgbHudDim     = tcell.NewRGBColor(180, 180, 180)
	RgbOverlayBg  = tcell.NewRGBColor(15, 15, 25)
	RgbOverlayHot = tcell.NewRGBColor(135, 206, 250) // Light sky blue
)
