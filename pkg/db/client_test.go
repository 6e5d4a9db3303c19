package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type account struct {
	ID    int
	Email string `gorm:"uniqueIndex"`
}

func newTestClient(t *testing.T) (*Client, *gorm.DB) {
	t.Helper()
	// A named in-memory database keeps every pooled connection on the same
	// store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&account{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return &Client{conn: conn}, conn
}

func TestWithTxCommit(t *testing.T) {
	client, conn := newTestClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&account{Email: "committed@example.com"}).Error
	})
	if err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := conn.Model(&account{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, conn := newTestClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&account{Email: "rolled@example.com"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return the callback error")
	}

	var count int64
	if err := conn.Model(&account{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave 0 records, got %d", count)
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	client, _ := newTestClient(t)

	ctx := context.Background()
	first := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&account{Email: "dup@example.com"}).Error
	})
	if first != nil {
		t.Fatalf("seeding account failed: %v", first)
	}

	second := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&account{Email: "dup@example.com"}).Error
	})
	if second == nil {
		t.Fatal("expected a duplicate insert to fail")
	}
	if !IsUniqueViolation(second, "") {
		t.Fatalf("expected IsUniqueViolation for %v", second)
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error should not count as a unique violation")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not count as a unique violation")
	}
}
