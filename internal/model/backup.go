package model

import "time"

// BackupVersion is written to every exported document.
const BackupVersion = "1.0"

// Settings carries view preferences inside a Backup.
type Settings struct {
	CurrentFilter string `json:"currentFilter"`
}

// Backup is the versioned export document.
type Backup struct {
	Version    string     `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Bookmarks  []Bookmark `json:"bookmarks"`
	Categories []Category `json:"categories"`
	Settings   Settings   `json:"settings"`
}
