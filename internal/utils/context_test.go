// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-record-keeper/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestUserIDCtxKey(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != 42 {
		t.Errorf("expected userID=42, got %d", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	userID, ok := GetUserIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if userID != 0 {
		t.Errorf("expected userID=0, got %d", userID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "42")

	_, ok := GetUserIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for string value, got true")
	}
}

func TestGetActorFromContext_Success(t *testing.T) {
	want := models.Actor{ID: 42, IsAdmin: true}
	ctx := context.WithValue(context.Background(), ActorCtxKey, want)

	actor, ok := GetActorFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if actor != want {
		t.Errorf("expected %+v, got %+v", want, actor)
	}
}

func TestGetActorFromContext_Missing(t *testing.T) {
	_, ok := GetActorFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
}
