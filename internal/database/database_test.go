package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"user=postgres dbname=bearing sslmode=disable", "user=postgres dbname=bearing sslmode=disable"},
		{"user=postgres dbname=bearing", "user=postgres dbname=bearing sslmode=require"},
		{"postgres://u:p@db:5432/bearing", "postgres://u:p@db:5432/bearing?sslmode=require"},
		{"postgresql://db/bearing?connect_timeout=3", "postgresql://db/bearing?connect_timeout=3&sslmode=require"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, withSSLMode(tt.in))
	}
}

func TestNewPostgresDB_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db, err := NewPostgresDB(ctx, "postgres://u:p@127.0.0.1:1/bearing?sslmode=disable")
	assert.Error(t, err)
	assert.Nil(t, db)
}
