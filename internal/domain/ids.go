package domain

// MemberID is the canonical member identifier (bigint primary key).
type MemberID int64

// RoomID identifies a member-owned room.
type RoomID int64

// RoomKeyID identifies an access key belonging to a room.
type RoomKeyID int64
