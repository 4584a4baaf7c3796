package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/dbx"
	"github.com/aslanbek/shanyrak/internal/server/config"
	"github.com/aslanbek/shanyrak/internal/server/models"
	commentsrepo "github.com/aslanbek/shanyrak/internal/server/repositories/comments"
	favoritesrepo "github.com/aslanbek/shanyrak/internal/server/repositories/favorites"
	listingsrepo "github.com/aslanbek/shanyrak/internal/server/repositories/listings"
	usersrepo "github.com/aslanbek/shanyrak/internal/server/repositories/users"
)

// --- in-memory fakes, shared by the service tests ---

type fakeUsersRepo struct {
	nextID int64
	users  map[int64]*models.User
	err    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{nextID: 1, users: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Phone == user.Phone {
			return 0, common.ErrConflict
		}
	}
	u := *user
	u.ID = f.nextID
	f.users[u.ID] = &u
	f.nextID++
	return u.ID, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, upd usersrepo.Update) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.City != nil {
		u.City = *upd.City
	}
	return nil
}

type fakeListingsRepo struct {
	nextID   int64
	listings map[int64]*models.Listing
}

func newFakeListingsRepo() *fakeListingsRepo {
	return &fakeListingsRepo{nextID: 1, listings: map[int64]*models.Listing{}}
}

func (f *fakeListingsRepo) Create(ctx context.Context, l *models.Listing) (int64, error) {
	cp := *l
	cp.ID = f.nextID
	f.listings[cp.ID] = &cp
	f.nextID++
	return cp.ID, nil
}

func (f *fakeListingsRepo) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingsRepo) Update(ctx context.Context, id int64, upd listingsrepo.Update) error {
	l, ok := f.listings[id]
	if !ok {
		return common.ErrNotFound
	}
	if upd.Type != nil {
		l.Type = *upd.Type
	}
	if upd.Price != nil {
		l.Price = *upd.Price
	}
	if upd.Address != nil {
		l.Address = *upd.Address
	}
	if upd.Area != nil {
		l.Area = *upd.Area
	}
	if upd.RoomsCount != nil {
		l.RoomsCount = *upd.RoomsCount
	}
	if upd.Description != nil {
		l.Description = *upd.Description
	}
	return nil
}

func (f *fakeListingsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.listings[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingsRepo) Search(ctx context.Context, filter listingsrepo.SearchFilter) ([]models.Listing, error) {
	ids := make([]int64, 0, len(f.listings))
	for id := range f.listings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := []models.Listing{}
	for _, id := range ids {
		l := f.listings[id]
		if filter.Type != nil && l.Type != *filter.Type {
			continue
		}
		if filter.RoomsCount != nil && l.RoomsCount != *filter.RoomsCount {
			continue
		}
		if filter.PriceFrom != nil && l.Price < *filter.PriceFrom {
			continue
		}
		if filter.PriceUntil != nil && l.Price > *filter.PriceUntil {
			continue
		}
		matched = append(matched, *l)
	}

	if filter.Offset >= len(matched) {
		return []models.Listing{}, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

type fakeCommentsRepo struct {
	nextID   int64
	comments map[int64]*models.Comment
}

func newFakeCommentsRepo() *fakeCommentsRepo {
	return &fakeCommentsRepo{nextID: 1, comments: map[int64]*models.Comment{}}
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	cp := *c
	cp.ID = f.nextID
	f.comments[cp.ID] = &cp
	f.nextID++
	out := cp
	return &out, nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentsRepo) ListByListing(ctx context.Context, listingID int64) ([]models.Comment, error) {
	ids := make([]int64, 0, len(f.comments))
	for id, c := range f.comments {
		if c.ListingID == listingID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := []models.Comment{}
	for _, id := range ids {
		result = append(result, *f.comments[id])
	}
	return result, nil
}

func (f *fakeCommentsRepo) CountByListing(ctx context.Context, listingID int64) (int, error) {
	n := 0
	for _, c := range f.comments {
		if c.ListingID == listingID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentsRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	c, ok := f.comments[id]
	if !ok {
		return common.ErrNotFound
	}
	c.Content = content
	return nil
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentsRepo) DeleteByListing(ctx context.Context, listingID int64) error {
	for id, c := range f.comments {
		if c.ListingID == listingID {
			delete(f.comments, id)
		}
	}
	return nil
}

type favKey struct {
	userID    int64
	listingID int64
}

type fakeFavoritesRepo struct {
	nextID   int64
	rows     map[favKey]int64
	listings *fakeListingsRepo
}

func newFakeFavoritesRepo(l *fakeListingsRepo) *fakeFavoritesRepo {
	return &fakeFavoritesRepo{nextID: 1, rows: map[favKey]int64{}, listings: l}
}

func (f *fakeFavoritesRepo) Add(ctx context.Context, userID, listingID int64) error {
	k := favKey{userID, listingID}
	if _, ok := f.rows[k]; ok {
		return nil
	}
	f.rows[k] = f.nextID
	f.nextID++
	return nil
}

func (f *fakeFavoritesRepo) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteListing, error) {
	type entry struct {
		id  int64
		fav models.FavoriteListing
	}
	entries := []entry{}
	for k, id := range f.rows {
		if k.userID != userID {
			continue
		}
		l, ok := f.listings.listings[k.listingID]
		if !ok {
			continue // dangling reference, skipped like the SQL join
		}
		entries = append(entries, entry{id: id, fav: models.FavoriteListing{ListingID: k.listingID, Address: l.Address}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	result := []models.FavoriteListing{}
	for _, e := range entries {
		result = append(result, e.fav)
	}
	return result, nil
}

func (f *fakeFavoritesRepo) Remove(ctx context.Context, userID, listingID int64) (bool, error) {
	k := favKey{userID, listingID}
	if _, ok := f.rows[k]; !ok {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

func (f *fakeFavoritesRepo) DeleteByListing(ctx context.Context, listingID int64) error {
	for k := range f.rows {
		if k.listingID == listingID {
			delete(f.rows, k)
		}
	}
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeListingsRepo
	c *fakeCommentsRepo
	f *fakeFavoritesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	l := newFakeListingsRepo()
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		l: l,
		c: newFakeCommentsRepo(),
		f: newFakeFavoritesRepo(l),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository       { return m.l }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository       { return m.c }
func (m *fakeRepoManager) Favorites(db dbx.DBTX) favoritesrepo.Repository     { return m.f }

// --- constructors ---

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Token.Secret = "test-secret"
	cfg.Token.AccessTTL = time.Hour
	return cfg
}
