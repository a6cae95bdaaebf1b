package platform

// Package platform provides OS integration helpers: output directory
// creation and opening folders in the system file manager.
