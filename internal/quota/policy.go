package quota

import (
	"context"
	"errors"
	"time"

	"github.com/agencydesk/agencydesk/internal/cache"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/store"
)

// ErrExceededEmpty signals that the caller is over the daily limit and has
// no unlocked history to serve. It is a client condition, not a fault.
var ErrExceededEmpty = errors.New("quota: limit exceeded with no unlocked contacts")

// Usage reports ledger state after any charge applied by the request.
type Usage struct {
	ContactsViewedToday int  `json:"contactsViewedToday"`
	HasExceeded         bool `json:"hasExceeded"`
}

// PageResult is the outcome of resolving a contact page request.
type PageResult struct {
	Contacts    []models.Contact
	TotalPages  int
	CurrentPage int
	Usage       Usage
}

// Policy decides, per request, which contacts to serve and which contact IDs
// to charge against the caller's daily ledger entry.
type Policy struct {
	contacts *store.ContactStore
	ledger   *store.LedgerStore
	counts   *cache.ContactCount

	dailyLimit int
	pageSize   int

	now func() time.Time
}

// NewPolicy constructs a Policy. counts may be nil to disable count caching.
func NewPolicy(contacts *store.ContactStore, ledger *store.LedgerStore, counts *cache.ContactCount, dailyLimit, pageSize int) *Policy {
	return &Policy{
		contacts:   contacts,
		ledger:     ledger,
		counts:     counts,
		dailyLimit: dailyLimit,
		pageSize:   pageSize,
		now:        time.Now,
	}
}

// DailyLimit returns the configured daily unlock limit.
func (p *Policy) DailyLimit() int { return p.dailyLimit }

// PageSize returns the configured page size.
func (p *Policy) PageSize() int { return p.pageSize }

// ResolvePage serves one page of the contact catalog for the caller,
// applying quota rules in this precedence:
//
//  1. admins bypass the ledger entirely
//  2. over the limit without a search: serve unlocked history only
//  3. over the limit with a search: search within unlocked history
//  4. under the limit with a search: search the full catalog, charging
//     results not yet unlocked (a page may legitimately cross the limit)
//  5. under the limit without a search: rotated feed, charging the fresh
//     records served
//
// Records are fetched before any charge is written; a failed fetch aborts
// with no ledger change, and a failed charge aborts the whole request so a
// charge is never reported without having been durably applied.
func (p *Policy) ResolvePage(ctx context.Context, user models.User, page int, search string) (PageResult, error) {
	if page < 1 {
		page = 1
	}

	if user.IsAdmin {
		return p.resolveAdmin(ctx, page, search)
	}

	today := models.DateKey(p.now())
	day, errGet := p.ledger.Get(ctx, user.ID, today)
	if errGet != nil {
		return PageResult{}, errGet
	}
	exceeded := day.ViewedCount >= p.dailyLimit

	switch {
	case exceeded:
		return p.resolveHistory(ctx, page, search, day)
	case search != "":
		return p.resolveSearch(ctx, user.ID, today, page, search, day)
	default:
		return p.resolveFeed(ctx, user.ID, today, page, day)
	}
}

// resolveAdmin serves the requested page straight from the catalog with no
// ledger interaction.
func (p *Policy) resolveAdmin(ctx context.Context, page int, search string) (PageResult, error) {
	total, errCount := p.contacts.Count(ctx, search)
	if errCount != nil {
		return PageResult{}, errCount
	}
	rows, errRange := p.contacts.RangeByStableID(ctx, (page-1)*p.pageSize, p.pageSize, search)
	if errRange != nil {
		return PageResult{}, errRange
	}
	return PageResult{
		Contacts:    rows,
		TotalPages:  pageCount(total, p.pageSize),
		CurrentPage: page,
		Usage:       Usage{ContactsViewedToday: 0, HasExceeded: false},
	}, nil
}

// resolveHistory serves only contacts already unlocked today. Applies to
// both plain and searched requests once the limit is reached.
func (p *Policy) resolveHistory(ctx context.Context, page int, search string, day store.DayUsage) (PageResult, error) {
	if len(day.ViewedContactIDs) == 0 {
		// Result still carries usage so the transport can shape the
		// limit-exceeded response body.
		return PageResult{
			CurrentPage: page,
			Usage:       Usage{ContactsViewedToday: day.ViewedCount, HasExceeded: true},
		}, ErrExceededEmpty
	}

	total, errCount := p.contacts.CountByIDs(ctx, day.ViewedContactIDs, search)
	if errCount != nil {
		return PageResult{}, errCount
	}
	rows, errRange := p.contacts.RangeByIDs(ctx, day.ViewedContactIDs, (page-1)*p.pageSize, p.pageSize, search)
	if errRange != nil {
		return PageResult{}, errRange
	}
	return PageResult{
		Contacts:    rows,
		TotalPages:  pageCount(total, p.pageSize),
		CurrentPage: page,
		Usage:       Usage{ContactsViewedToday: day.ViewedCount, HasExceeded: true},
	}, nil
}

// resolveSearch searches the full catalog and charges any returned contact
// not yet unlocked today. Search escapes rotation on purpose so users can
// always find records they already know about, but exposure still costs
// quota like any other. The serving decision is made before charging, so a
// single page can carry the caller across the limit.
func (p *Policy) resolveSearch(ctx context.Context, userID uint64, today string, page int, search string, day store.DayUsage) (PageResult, error) {
	total, errCount := p.contacts.Count(ctx, search)
	if errCount != nil {
		return PageResult{}, errCount
	}
	rows, errRange := p.contacts.RangeByStableID(ctx, (page-1)*p.pageSize, p.pageSize, search)
	if errRange != nil {
		return PageResult{}, errRange
	}

	viewed := day.IDSet()
	var fresh []uint64
	for _, row := range rows {
		if _, ok := viewed[row.ID]; !ok {
			fresh = append(fresh, row.ID)
		}
	}

	newCount := day.ViewedCount
	if len(fresh) > 0 {
		charged, errCharge := p.ledger.Charge(ctx, userID, today, fresh)
		if errCharge != nil {
			return PageResult{}, errCharge
		}
		newCount = charged
	}

	return PageResult{
		Contacts:    rows,
		TotalPages:  pageCount(total, p.pageSize),
		CurrentPage: page,
		Usage:       Usage{ContactsViewedToday: newCount, HasExceeded: newCount >= p.dailyLimit},
	}, nil
}

// resolveFeed serves the rotated daily feed: fetch the over-sized rotation
// window, drop contacts already unlocked today, take one page of fresh ones
// and charge them.
func (p *Policy) resolveFeed(ctx context.Context, userID uint64, today string, page int, day store.DayUsage) (PageResult, error) {
	total, errCount := p.totalContacts(ctx)
	if errCount != nil {
		return PageResult{}, errCount
	}
	if total == 0 {
		return PageResult{
			CurrentPage: page,
			Usage:       Usage{ContactsViewedToday: day.ViewedCount, HasExceeded: false},
		}, nil
	}

	offset, limit := Window(p.now(), page, p.pageSize, int(total))
	pool, errRange := p.contacts.RangeByStableID(ctx, offset, limit, "")
	if errRange != nil {
		return PageResult{}, errRange
	}

	viewed := day.IDSet()
	fresh := make([]models.Contact, 0, p.pageSize)
	for _, row := range pool {
		if _, ok := viewed[row.ID]; ok {
			continue
		}
		fresh = append(fresh, row)
		if len(fresh) == p.pageSize {
			break
		}
	}

	newCount := day.ViewedCount
	if len(fresh) > 0 {
		ids := make([]uint64, len(fresh))
		for i, row := range fresh {
			ids[i] = row.ID
		}
		charged, errCharge := p.ledger.Charge(ctx, userID, today, ids)
		if errCharge != nil {
			return PageResult{}, errCharge
		}
		newCount = charged
	}

	return PageResult{
		Contacts:    fresh,
		TotalPages:  pageCount(total, p.pageSize),
		CurrentPage: page,
		Usage:       Usage{ContactsViewedToday: newCount, HasExceeded: newCount >= p.dailyLimit},
	}, nil
}

// totalContacts returns the catalog size, via the count cache when present.
func (p *Policy) totalContacts(ctx context.Context) (int64, error) {
	if total, ok := p.counts.Get(ctx); ok {
		return total, nil
	}
	total, errCount := p.contacts.Count(ctx, "")
	if errCount != nil {
		return 0, errCount
	}
	p.counts.Set(ctx, total)
	return total, nil
}

// pageCount computes the number of pages for a total at the given size.
func pageCount(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
