package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"churchconnect/internal/models"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeCodeRepo mirrors the conditional-update semantics of the SQL store.
type fakeCodeRepo struct {
	nextID int64
	rows   map[int64]*models.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{rows: map[int64]*models.VerificationCode{}}
}

func (r *fakeCodeRepo) Create(rec *models.VerificationCode) error {
	r.nextID++
	rec.ID = r.nextID
	cp := *rec
	r.rows[rec.ID] = &cp
	return nil
}

func (r *fakeCodeRepo) LatestUnused(channel models.VerificationChannel, recipient, code string) (*models.VerificationCode, error) {
	var best *models.VerificationCode
	for _, v := range r.rows {
		if v.Channel != channel || v.Recipient != recipient || v.Code != code || v.IsUsed {
			continue
		}
		if best == nil || v.CreatedAt.After(best.CreatedAt) {
			best = v
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *fakeCodeRepo) Consume(id int64, now time.Time, maxAttempts int) (bool, error) {
	v, ok := r.rows[id]
	if !ok || v.IsUsed {
		return false, nil
	}
	accepted := v.IsValid(now, maxAttempts)
	v.Attempts++
	v.IsUsed = accepted
	return accepted, nil
}

func (r *fakeCodeRepo) HasRecent(channel models.VerificationChannel, recipient string, since time.Time) (bool, error) {
	for _, v := range r.rows {
		if v.Channel == channel && v.Recipient == recipient && !v.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCodeRepo) DeleteOlderThan(channel models.VerificationChannel, recipient string, cutoff time.Time) error {
	for id, v := range r.rows {
		if v.Channel == channel && v.Recipient == recipient && v.CreatedAt.Before(cutoff) {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeCodeRepo) Delete(id int64) error {
	delete(r.rows, id)
	return nil
}

type fakeNotifier struct {
	sent []string // recipients, in order
	fail bool
}

func (n *fakeNotifier) Send(to, subject, htmlBody, textBody string) error {
	if n.fail {
		return errors.New("smtp down")
	}
	n.sent = append(n.sent, to)
	return nil
}

func newTestVerification(t *testing.T) (*VerificationService, *fakeCodeRepo, *fakeNotifier, *fixedClock) {
	t.Helper()
	repo := newFakeCodeRepo()
	notifier := &fakeNotifier{}
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewEmailVerificationService(repo, notifier)
	svc.Clock = clock
	next := "111111"
	svc.Generate = func(n int) (string, error) { return next, nil }
	return svc, repo, notifier, clock
}

func TestIssueStoresAndDelivers(t *testing.T) {
	svc, repo, notifier, clock := newTestVerification(t)

	rec, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	require.Equal(t, "111111", rec.Code)
	require.Equal(t, clock.Now().Add(15*time.Minute), rec.ExpiresAt)
	require.Len(t, repo.rows, 1)
	require.Equal(t, []string{"a@example.com"}, notifier.sent)
}

func TestIssueRollsBackOnDeliveryFailure(t *testing.T) {
	svc, repo, notifier, _ := newTestVerification(t)
	notifier.fail = true

	_, err := svc.Issue("a@example.com")
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.Empty(t, repo.rows, "no valid code may survive a failed delivery")
}

func TestIssueCleansUpStaleRows(t *testing.T) {
	svc, repo, _, clock := newTestVerification(t)

	_, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = svc.Issue("a@example.com")
	require.NoError(t, err)

	// the two-hour-old row is gone, only the fresh one remains
	require.Len(t, repo.rows, 1)
	for _, v := range repo.rows {
		require.Equal(t, clock.Now(), v.CreatedAt)
	}
}

func TestValidateAcceptsOnce(t *testing.T) {
	svc, _, _, _ := newTestVerification(t)

	_, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	ok, err := svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.True(t, ok)

	// the same code cannot be replayed
	ok, err = svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc, repo, _, clock := newTestVerification(t)

	rec, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	ok, err := svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.False(t, ok)

	// the expired row absorbed the attempt but stays unused
	row := repo.rows[rec.ID]
	require.False(t, row.IsUsed)
	require.Equal(t, 1, row.Attempts)
}

func TestValidateEnforcesAttemptCeiling(t *testing.T) {
	svc, repo, _, _ := newTestVerification(t)

	rec, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	repo.rows[rec.ID].Attempts = 5

	ok, err := svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateWrongCodeLeavesRecordUntouched(t *testing.T) {
	svc, repo, _, _ := newTestVerification(t)

	rec, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	// five wrong guesses match no row, so the real record keeps all its
	// attempts; the right code still works afterwards
	for i := 0; i < 5; i++ {
		ok, err := svc.Validate("a@example.com", "000001")
		require.NoError(t, err)
		require.False(t, ok)
	}
	require.Equal(t, 0, repo.rows[rec.ID].Attempts)

	ok, err := svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateUnknownRecipient(t *testing.T) {
	svc, _, _, _ := newTestVerification(t)

	ok, err := svc.Validate("nobody@example.com", "111111")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasRecentTracksCooldown(t *testing.T) {
	svc, _, _, clock := newTestVerification(t)

	recent, err := svc.HasRecent("a@example.com")
	require.NoError(t, err)
	require.False(t, recent)

	_, err = svc.Issue("a@example.com")
	require.NoError(t, err)

	recent, err = svc.HasRecent("a@example.com")
	require.NoError(t, err)
	require.True(t, recent)

	clock.Advance(29 * time.Second)
	recent, err = svc.HasRecent("a@example.com")
	require.NoError(t, err)
	require.True(t, recent)

	clock.Advance(2 * time.Second)
	recent, err = svc.HasRecent("a@example.com")
	require.NoError(t, err)
	require.False(t, recent)
}

func TestChannelsAreIsolated(t *testing.T) {
	repo := newFakeCodeRepo()
	notifier := &fakeNotifier{}
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	verify := NewEmailVerificationService(repo, notifier)
	verify.Clock = clock
	verify.Generate = func(n int) (string, error) { return "222222", nil }

	reset := NewPasswordResetCodeService(repo, notifier)
	reset.Clock = clock
	reset.Generate = func(n int) (string, error) { return "222222", nil }

	_, err := verify.Issue("a@example.com")
	require.NoError(t, err)

	// a verification code is not a reset code
	ok, err := reset.Validate("a@example.com", "222222")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = verify.Validate("a@example.com", "222222")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLatestCodeWinsWhenReissued(t *testing.T) {
	svc, _, _, clock := newTestVerification(t)

	codes := []string{"111111", "333333"}
	i := 0
	svc.Generate = func(n int) (string, error) {
		c := codes[i]
		i++
		return c, nil
	}

	_, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.Issue("a@example.com")
	require.NoError(t, err)

	// both codes are within TTL; each matches its own row
	ok, err := svc.Validate("a@example.com", "333333")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Validate("a@example.com", "111111")
	require.NoError(t, err)
	require.True(t, ok)
}
