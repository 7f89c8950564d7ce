package service

import (
	"context"
	"errors"
	"testing"

	"pagesmith/internal/config"
	"pagesmith/internal/domain"
)

func TestGetUser_FirstVisitGrantsStarterCredits(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(&fakeUserRepo{store: store}, testLogger())

	user, err := svc.GetUser(context.Background(), "new-subject")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Credits != config.StarterCredits {
		t.Errorf("credits = %d, want %d", user.Credits, config.StarterCredits)
	}

	// A later visit must not grant again.
	store.users["new-subject"].Credits = 2
	user, err = svc.GetUser(context.Background(), "new-subject")
	if err != nil {
		t.Fatalf("second GetUser failed: %v", err)
	}
	if user.Credits != 2 {
		t.Errorf("existing balance overwritten: %d", user.Credits)
	}
}

func TestPurchaseCredits(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1", 3)
	svc := NewUserService(&fakeUserRepo{store: store}, testLogger())

	balance, err := svc.PurchaseCredits(context.Background(), "u1", "starter")
	if err != nil {
		t.Fatalf("PurchaseCredits failed: %v", err)
	}
	if want := 3 + config.CreditPacks["starter"]; balance != want {
		t.Errorf("balance = %d, want %d", balance, want)
	}
}

func TestPurchaseCredits_UnknownPack(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1", 3)
	svc := NewUserService(&fakeUserRepo{store: store}, testLogger())

	if _, err := svc.PurchaseCredits(context.Background(), "u1", "mega"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if got := store.users["u1"].Credits; got != 3 {
		t.Errorf("credits changed on rejected pack: %d", got)
	}
}
