package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Schoolhub/src/database/memory"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
	"Backend-Schoolhub/src/testutil"
)

func TestRosterStore(t *testing.T) {
	ctx := context.Background()
	inactive := testutil.Student("S-009", "P1")
	inactive.Active = false
	s := memory.NewRosterStore(testutil.Student("S-002", "P1"), testutil.Student("S-001", "P2"), testutil.Teacher("T-001", "Somsri"), inactive)

	t.Run("TestInsertionOrderAndScope", func(t *testing.T) {
		all, err := s.GetRoster(ctx, models.RosterScope{})
		require.NoError(t, err)
		ids := []string{}
		for _, p := range all {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"S-002", "S-001", "T-001"}, ids)

		p1, err := s.GetRoster(ctx, models.RosterScope{Kind: models.KindStudent, ClassName: "P1"})
		require.NoError(t, err)
		require.Len(t, p1, 1)
		assert.Equal(t, "S-002", p1[0].ID)
	})

	t.Run("TestGetPerson", func(t *testing.T) {
		p, err := s.GetPerson(ctx, "S-009")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.False(t, p.Active)

		missing, err := s.GetPerson(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestRecordStoreConditionalWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRecordStore()
	entry := testutil.At(8, 0, 0)
	rec := models.AttendanceRecord{PersonID: "T-001", Date: testutil.Date, Status: models.StatusPresent, EntryTime: &entry}

	_, err := s.InsertRecord(ctx, rec)
	require.NoError(t, err)
	_, err = s.InsertRecord(ctx, rec)
	assert.ErrorIs(t, err, models.ErrRecordExists)

	ok, err := s.SetExitTime(ctx, "T-001", testutil.Date, testutil.At(16, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.SetExitTime(ctx, "T-001", testutil.Date, testutil.At(17, 0, 0))
	require.NoError(t, err)
	assert.False(t, ok, "exit is only written once")

	ok, err = s.SetExitTime(ctx, "T-404", testutil.Date, testutil.At(17, 0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetRecord(ctx, "T-001", testutil.Date)
	require.NoError(t, err)
	assert.True(t, got.ExitTime.Equal(testutil.At(16, 0, 0)))

	// สำเนาที่คืนไปแก้ไขแล้วต้องไม่กระทบ store
	*got.ExitTime = testutil.At(23, 0, 0)
	again, err := s.GetRecord(ctx, "T-001", testutil.Date)
	require.NoError(t, err)
	assert.True(t, again.ExitTime.Equal(testutil.At(16, 0, 0)))
}

func TestLedgerStoreListAndPaginate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewLedgerStore()
	var batch []models.LedgerEntry
	for i := 0; i < 5; i++ {
		batch = append(batch, models.LedgerEntry{ID: string(rune('a' + i)), PersonID: "S-001", ClassName: "P1", MonthIndex: i, Date: testutil.Date})
	}
	batch = append(batch, models.LedgerEntry{ID: "z", PersonID: "S-101", ClassName: "P2", Date: "2025-07-01"})
	require.NoError(t, s.AppendLedgerEntries(ctx, batch))

	page, total, err := s.ListLedgerEntries(ctx, fees.LedgerFilter{PersonID: "S-001", Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].MonthIndex)

	page, total, err = s.ListLedgerEntries(ctx, fees.LedgerFilter{Skip: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Empty(t, page)

	// skip ติดลบ (overflow จากหน้าใหญ่มาก) ต้องไม่ panic
	page, _, err = s.ListLedgerEntries(ctx, fees.LedgerFilter{Skip: -100, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, _, err = s.ListLedgerEntries(ctx, fees.LedgerFilter{Window: models.ReportWindow{From: "2025-07-01"}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "P2", page[0].ClassName)

	t.Run("TestDuplicateIDRejectsWholeBatch", func(t *testing.T) {
		err := s.AppendLedgerEntries(ctx, []models.LedgerEntry{{ID: "new-1"}, {ID: "a"}})
		assert.Error(t, err)
		_, total, _ := s.ListLedgerEntries(ctx, fees.LedgerFilter{})
		assert.EqualValues(t, 6, total)
	})
}

func TestLedgerStoreSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := memory.NewLedgerStore()

	changes, err := s.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, s.AppendLedgerEntries(context.Background(), []models.LedgerEntry{{ID: "e1", PersonID: "S-001"}}))
	select {
	case ch := <-changes:
		assert.Equal(t, models.LedgerInserted, ch.Type)
		assert.Equal(t, "e1", ch.EntryID)
		assert.Equal(t, "S-001", ch.PersonID)
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestSessionStoreAndCache(t *testing.T) {
	ctx := context.Background()

	sessions := memory.NewSessionStore()
	missing, err := sessions.LoadSession(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cache := memory.NewSummaryCache()
	_, ok, err := cache.GetClassSummaries(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetClassSummaries(ctx, map[string]models.ClassFeeSummary{"P1": {ClassName: "P1"}}))
	got, ok, err := cache.GetClassSummaries(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "P1", got["P1"].ClassName)
}

func TestKeyLocker(t *testing.T) {
	l := memory.NewKeyLocker()
	ctx := context.Background()

	t.Run("TestSerializesSameKey", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(ctx, "S-001|2025-06-02")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
	})

	t.Run("TestContextCancelWhileWaiting", func(t *testing.T) {
		unlock, err := l.Lock(ctx, "k")
		require.NoError(t, err)
		defer unlock()

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = l.Lock(waitCtx, "k")
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		other, err := l.Lock(ctx, "other")
		require.NoError(t, err)
		other()
	})
}
