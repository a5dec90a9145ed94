package persistence_test

import (
	"context"
	"os"
	"testing"

	"git.appkode.ru/pub/go/failure"
	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
	"p2p_market/internal/infrastructure/persistence"
	"p2p_market/pkg/dbtest"
	"p2p_market/pkg/errcodes"
)

// testDB подключается к базе из TEST_PG_DSN и накатывает миграции.
// Без переменной окружения тест пропускается.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/001_init.sql"))

	_, err = db.Exec(`TRUNCATE logs, deals, listings, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func seedDeal(t *testing.T, db *sqlx.DB, code value.TradeCode) *entity.Deal {
	t.Helper()

	ctx := context.Background()

	users := persistence.NewUserRepository(db)
	listings := persistence.NewListingRepository(db)
	deals := persistence.NewDealRepository(db)

	seller := &entity.User{Name: "Abebe", Username: "abebe_k", Role: value.UserRoleSeller}
	require.NoError(t, users.Create(ctx, seller))

	buyer := &entity.User{Name: "Chaltu", Username: "chaltu_b", Role: value.UserRoleBuyer}
	require.NoError(t, users.Create(ctx, buyer))

	listing := &entity.Listing{
		UserID: seller.ID,
		Type:   value.ListingTypeSell,
		Amount: 500,
		Rate:   130,
		Status: value.ListingStatusActive,
	}
	require.NoError(t, listings.Create(ctx, listing))

	deal := &entity.Deal{
		ListingID:        listing.ID,
		BuyerID:          buyer.ID,
		SellerID:         seller.ID,
		USDTAmount:       100,
		ETBAmount:        13000,
		CommissionAmount: 1.5,
		TradeCode:        code,
		EscrowWallet:     "TEscrow123",
		Status:           value.DealStatusPending,
	}
	require.NoError(t, deals.Create(ctx, deal, entity.NewDealCreatedLog(deal)))

	return deal
}

func TestDealRepositoryCreate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	deals := persistence.NewDealRepository(db)
	logs := persistence.NewLogRepository(db)

	created := seedDeal(t, db, "AB12C")
	rq.NotZero(created.ID)

	// Сделка и запись журнала появляются вместе.
	entries, err := logs.ListByDeal(ctx, created.ID)
	rq.NoError(err)
	rq.Len(entries, 1)
	rq.Equal(entity.ActionDealCreated, entries[0].Action)

	got, err := deals.GetByTradeCode(ctx, "AB12C")
	rq.NoError(err)
	rq.Equal(created.ID, got.ID)
	rq.Equal(value.DealStatusPending, got.Status)

	// Журнал только дописывается, порядок по id сохраняется.
	rq.NoError(logs.Append(ctx, entity.LogEntry{
		DealID: created.ID,
		Action: "Note",
		Notes:  "manual audit note",
	}))

	entries, err = logs.ListByDeal(ctx, created.ID)
	rq.NoError(err)
	rq.Len(entries, 2)
	rq.Equal("Note", entries[1].Action)
	rq.NotZero(entries[1].Timestamp)
}

func TestDealRepositoryTradeCodeUnique(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	deals := persistence.NewDealRepository(db)

	first := seedDeal(t, db, "AB12C")

	duplicate := &entity.Deal{
		ListingID:        first.ListingID,
		BuyerID:          first.BuyerID,
		SellerID:         first.SellerID,
		USDTAmount:       50,
		ETBAmount:        6500,
		CommissionAmount: 0.75,
		TradeCode:        "AB12C",
		EscrowWallet:     "TEscrow123",
		Status:           value.DealStatusPending,
	}

	err := deals.Create(ctx, duplicate, entity.NewDealCreatedLog(duplicate))
	rq.Error(err)
	rq.True(failure.IsConflictError(err))
	rq.Equal(errcodes.TradeCodeTaken, failure.Code(err))
}

func TestDealRepositoryTransitionStatus(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	deals := persistence.NewDealRepository(db)
	logs := persistence.NewLogRepository(db)

	created := seedDeal(t, db, "AB12C")

	paid, err := deals.TransitionStatus(
		ctx, "AB12C",
		value.DealStatusPending, value.DealStatusPaid,
		func(d *entity.Deal) entity.LogEntry { return entity.NewPaymentConfirmedLog(d) },
	)
	rq.NoError(err)
	rq.Equal(value.DealStatusPaid, paid.Status)

	entries, err := logs.ListByDeal(ctx, created.ID)
	rq.NoError(err)
	rq.Len(entries, 2)
	rq.Equal(entity.ActionPaymentConfirmed, entries[1].Action)

	// Повторный переход из pending падает конфликтом.
	_, err = deals.TransitionStatus(
		ctx, "AB12C",
		value.DealStatusPending, value.DealStatusPaid,
		func(d *entity.Deal) entity.LogEntry { return entity.NewPaymentConfirmedLog(d) },
	)
	rq.Error(err)
	rq.True(failure.IsConflictError(err))
	rq.Equal(errcodes.InvalidDealStatus, failure.Code(err))

	// Неизвестный код — NotFound.
	_, err = deals.TransitionStatus(
		ctx, "ZZZZZ",
		value.DealStatusPending, value.DealStatusPaid,
		func(d *entity.Deal) entity.LogEntry { return entity.NewPaymentConfirmedLog(d) },
	)
	rq.Error(err)
	rq.True(failure.IsNotFoundError(err))
}

func TestUserRepositoryUsernameUnique(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	users := persistence.NewUserRepository(db)

	first := &entity.User{Name: "Abebe", Username: "abebe_k", Role: value.UserRoleSeller}
	rq.NoError(users.Create(ctx, first))

	duplicate := &entity.User{Name: "Other", Username: "abebe_k", Role: value.UserRoleBuyer}

	err := users.Create(ctx, duplicate)
	rq.Error(err)
	rq.True(failure.IsConflictError(err))
	rq.Equal(errcodes.UsernameAlreadyInUse, failure.Code(err))
}
