package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlayerStatus(t *testing.T) {
	assert.Equal(t, "Active", Player{}.Status())
	assert.Equal(t, "Banned", Player{Banned: true}.Status())
}

func TestPlayerWinLoss(t *testing.T) {
	p := Player{Wins: 12, Losses: 3}
	assert.Equal(t, "12 / 3", p.WinLoss())
}

func TestStorageObjectRecordID(t *testing.T) {
	o := StorageObject{Collection: "saves", Key: "slot1", UserID: "user-1"}
	assert.Equal(t, "saves/slot1/user-1", o.RecordID())
}

func TestStorageObjectPermission(t *testing.T) {
	tests := []struct {
		name  string
		read  int
		write int
		want  string
	}{
		{name: "owner", read: PermissionOwnerRead, write: PermissionOwnerWrite, want: "owner read, owner write"},
		{name: "public read only", read: PermissionPublicRead, write: PermissionNoWrite, want: "public read, no write"},
		{name: "locked", read: PermissionNoRead, write: PermissionNoWrite, want: "no read, no write"},
		{name: "unknown values", read: 7, write: 9, want: "read(7), write(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := StorageObject{PermissionRead: tt.read, PermissionWrite: tt.write}
			assert.Equal(t, tt.want, o.Permission())
		})
	}
}

func TestSessionExpired(t *testing.T) {
	assert.False(t, Session{}.Expired(), "zero expiry never expires")
	assert.False(t, Session{ExpiresAt: time.Now().Add(time.Hour)}.Expired())
	assert.True(t, Session{ExpiresAt: time.Now().Add(-time.Minute)}.Expired())
}
