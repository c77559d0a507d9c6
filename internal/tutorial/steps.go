package tutorial

import "strings"

// Step is one entry in the onboarding sequence. The step table is fixed at
// process start and never mutated.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionHint  string `json:"action_hint"`
	Page        string `json:"page"`
}

// defaultSteps is the ordered onboarding sequence. The last entry is the
// synthetic terminal step shown once every real step has been visited.
var defaultSteps = []Step{
	{
		Title:       "Welcome to Pothole Detection System",
		Description: "This tutorial will guide you through the main features of the application.",
		ActionHint:  "Continue to start the tutorial or Skip to explore on your own.",
		Page:        "Home",
	},
	{
		Title:       "Upload & Detect",
		Description: "Upload images to detect potholes using our advanced detection model.",
		ActionHint:  "Try uploading an image to see pothole detection in action.",
		Page:        "Upload",
	},
	{
		Title:       "Gallery View",
		Description: "View all your processed images with detection results.",
		ActionHint:  "Browse through previously processed images.",
		Page:        "Gallery",
	},
	{
		Title:       "Analytics Dashboard",
		Description: "Analyze pothole detection statistics and trends.",
		ActionHint:  "Explore detection metrics and visualizations.",
		Page:        "Dashboard",
	},
	{
		Title:       "Map Visualization",
		Description: "View geographical distribution of detected potholes.",
		ActionHint:  "Explore pothole locations on the interactive map.",
		Page:        "Map",
	},
	{
		Title:       "Database Management",
		Description: "Access and manage your detection records in the database.",
		ActionHint:  "View detection records stored in the database.",
		Page:        "Database",
	},
	{
		Title:       "Batch Processing",
		Description: "Process multiple images at once for efficient analysis.",
		ActionHint:  "Try batch processing for multiple image analysis.",
		Page:        "Batch",
	},
	{
		Title:       "Video Processing",
		Description: "Process video files or webcam feed to detect potholes in real-time.",
		ActionHint:  "Try real-time video analysis for dynamic pothole detection.",
		Page:        "Video",
	},
	{
		Title:       "Alerts & Reporting",
		Description: "Configure alerts for critical pothole areas and generate comprehensive reports.",
		ActionHint:  "Set up alerts and explore report generation features with Detective Pothole.",
		Page:        "Alerts",
	},
	{
		Title:       "Road Repair Requests",
		Description: "Submit and track repair requests for detected potholes with one click.",
		ActionHint:  "Try the one-click repair request system to efficiently manage road repairs.",
		Page:        "Repairs",
	},
	{
		Title:       "User Manual",
		Description: "Learn how to use the app and understand the ML model technology behind it.",
		ActionHint:  "Explore the comprehensive user guide and technical documentation.",
		Page:        "Manual",
	},
	{
		Title:       "Tutorial Completed!",
		Description: "You've completed the tutorial and are ready to use the Pothole Detection System.",
		ActionHint:  "Start using the application or restart the tutorial anytime from the Help menu.",
		Page:        "Home",
	},
}

// pageAliases maps navigation display names to the canonical page
// identifiers used in the step table.
var pageAliases = map[string]string{
	"upload & detect":      "Upload",
	"gallery":              "Gallery",
	"dashboard":            "Dashboard",
	"map":                  "Map",
	"database":             "Database",
	"batch processing":     "Batch",
	"video processing":     "Video",
	"alerts & reporting":   "Alerts",
	"road repair requests": "Repairs",
	"user manual":          "Manual",
	"code viewer":          "Code Viewer",
}

// stepTips holds the per-page helper tips shown next to each step.
var stepTips = map[string]string{
	"Home":        "The home page gives you an overview of all available features. Click on the sidebar to navigate!",
	"Upload":      "You can upload your own images or use our sample images to test the detection system.",
	"Gallery":     "Filter and sort your processed images to quickly find what you're looking for.",
	"Dashboard":   "Hover over charts to see detailed information about pothole detections.",
	"Map":         "Zoom in and out to explore pothole locations in different areas.",
	"Database":    "All your detection records are stored in the database for easy retrieval.",
	"Batch":       "Process multiple images at once to save time when working with large datasets.",
	"Video":       "Use the frame control to navigate through video detections frame by frame.",
	"Alerts":      "Set up SMS alerts to be notified about critical pothole areas.",
	"Repairs":     "Track the status of repair requests from submission to completion.",
	"Manual":      "The user manual contains detailed information about all app features.",
	"Code Viewer": "Explore the source code to understand how the application works.",
}

const fallbackTip = "Explore each feature thoroughly to get the most out of the application!"

// TipForPage returns the helper tip associated with a page.
func TipForPage(page string) string {
	if tip, ok := stepTips[page]; ok {
		return tip
	}
	return fallbackTip
}

// canonicalPage resolves navigation display names to canonical page names.
func canonicalPage(name string) string {
	if canonical, ok := pageAliases[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}
