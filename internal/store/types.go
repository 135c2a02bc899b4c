package store

import (
	"database/sql"
	"sync"
)

// Blob names, shared by both backends.
const (
	blobRoster     = "roster"
	blobLedger     = "ledger"
	blobAttendance = "attendance"
)

// File names used by the file backend.
const (
	MembersFile    = "tennis_members.json"
	MatchesFile    = "tennis_matches.json"
	AttendanceFile = "tennis_attendance.json"
)

// SQLStore keeps the club state in the members, matches and attendance tables.
type SQLStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// FileStore keeps the club state as three JSON files in one directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}
