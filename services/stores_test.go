package services

// In-memory stand-ins for the mongo stores. They keep the same "one post per
// collection" shape the real store has, so tests can assert where documents
// actually live.

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societyhub/apperrors"
	"societyhub/models"
	"societyhub/store"
)

type fakePosts struct {
	colls map[models.ModerationStatus]map[primitive.ObjectID]*models.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{colls: map[models.ModerationStatus]map[primitive.ObjectID]*models.Post{
		models.StatusSubmitted: {},
		models.StatusApproved:  {},
		models.StatusRejected:  {},
	}}
}

func (f *fakePosts) Insert(_ context.Context, status models.ModerationStatus, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.colls[status][p.ID] = &cp
	return nil
}

func (f *fakePosts) Get(_ context.Context, status models.ModerationStatus, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.colls[status][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Find(ctx context.Context, id primitive.ObjectID) (*models.Post, models.ModerationStatus, error) {
	for _, status := range []models.ModerationStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRejected} {
		if p, err := f.Get(ctx, status, id); err == nil {
			return p, status, nil
		}
	}
	return nil, "", apperrors.ErrNotFound
}

func (f *fakePosts) List(_ context.Context, status models.ModerationStatus) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.colls[status] {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePosts) ListByAuthor(_ context.Context, authorID string) ([]store.StatusPost, error) {
	var out []store.StatusPost
	for status, coll := range f.colls {
		for _, p := range coll {
			if p.AuthorID == authorID {
				out = append(out, store.StatusPost{Post: *p, Status: status})
			}
		}
	}
	return out, nil
}

func (f *fakePosts) Move(_ context.Context, id primitive.ObjectID, from, to models.ModerationStatus, stamp func(*models.Post)) (*models.Post, error) {
	p, ok := f.colls[from][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	stamp(&cp)
	f.colls[to][id] = &cp
	delete(f.colls[from], id)
	out := cp
	return &out, nil
}

func (f *fakePosts) Update(_ context.Context, status models.ModerationStatus, id primitive.ObjectID, set bson.M) error {
	p, ok := f.colls[status][id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			p.Title = v.(string)
		case "content":
			p.Content = v.(string)
		case "category":
			p.Category = v.(string)
		case "tags":
			p.Tags = v.([]string)
		case "isPinned":
			p.IsPinned = v.(bool)
		case "isLocked":
			p.IsLocked = v.(bool)
		case "updatedAt":
			p.UpdatedAt = v.(int64)
		}
	}
	return nil
}

func (f *fakePosts) Delete(_ context.Context, status models.ModerationStatus, id primitive.ObjectID) error {
	if _, ok := f.colls[status][id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.colls[status], id)
	return nil
}

func (f *fakePosts) IncViews(_ context.Context, id primitive.ObjectID) error {
	if p, ok := f.colls[models.StatusApproved][id]; ok {
		p.Views++
		return nil
	}
	return apperrors.ErrNotFound
}

func (f *fakePosts) IncLikes(_ context.Context, id primitive.ObjectID) error {
	if p, ok := f.colls[models.StatusApproved][id]; ok {
		p.Likes++
		return nil
	}
	return apperrors.ErrNotFound
}

func (f *fakePosts) LastSubmissionAt(_ context.Context, authorID string) (int64, error) {
	var latest int64
	for _, coll := range f.colls {
		for _, p := range coll {
			if p.AuthorID == authorID && p.CreatedAt > latest {
				latest = p.CreatedAt
			}
		}
	}
	return latest, nil
}

func (f *fakePosts) count(id primitive.ObjectID) int {
	n := 0
	for _, coll := range f.colls {
		if _, ok := coll[id]; ok {
			n++
		}
	}
	return n
}

type fakeComments struct {
	byID map[primitive.ObjectID]*models.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{byID: map[primitive.ObjectID]*models.Comment{}}
}

func (f *fakeComments) Insert(_ context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeComments) Get(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.byID {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) ListByAuthor(_ context.Context, authorID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.byID {
		if c.AuthorID == authorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeComments) DeleteByPost(_ context.Context, postID primitive.ObjectID) (int64, error) {
	var n int64
	for id, c := range f.byID {
		if c.PostID == postID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeComments) IncLikes(_ context.Context, id primitive.ObjectID) error {
	c, ok := f.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.Likes++
	return nil
}

type fakeEvents struct {
	byID map[primitive.ObjectID]*models.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{byID: map[primitive.ObjectID]*models.Event{}}
}

func (f *fakeEvents) Insert(_ context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Get(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) List(_ context.Context, publicOnly bool) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.byID {
		if publicOnly && !e.IsPublic {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEvents) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	e, ok := f.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if v, ok := set["imageUrl"]; ok {
		e.ImageURL = v.(string)
	}
	if v, ok := set["title"]; ok {
		e.Title = v.(string)
	}
	if v, ok := set["signupOpen"]; ok {
		e.SignupOpen = v.(bool)
	}
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSignups struct {
	byID map[primitive.ObjectID]*models.EventSignup
}

func newFakeSignups() *fakeSignups {
	return &fakeSignups{byID: map[primitive.ObjectID]*models.EventSignup{}}
}

func (f *fakeSignups) Insert(_ context.Context, s *models.EventSignup, max int64) error {
	if max > 0 {
		var count int64
		for _, existing := range f.byID {
			if existing.EventID == s.EventID {
				count++
			}
		}
		if count >= max {
			return &apperrors.CapacityError{Max: max}
		}
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSignups) ListByEvent(_ context.Context, eventID primitive.ObjectID) ([]models.EventSignup, error) {
	var out []models.EventSignup
	for _, s := range f.byID {
		if s.EventID == eventID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSignups) CountByEvent(_ context.Context, eventID primitive.ObjectID) (int64, error) {
	var n int64
	for _, s := range f.byID {
		if s.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSignups) SetPaid(_ context.Context, eventID, id primitive.ObjectID, paid bool) error {
	s, ok := f.byID[id]
	if !ok || s.EventID != eventID {
		return apperrors.ErrNotFound
	}
	s.Paid = paid
	return nil
}

func (f *fakeSignups) DeleteByEvent(_ context.Context, eventID primitive.ObjectID) (int64, error) {
	var n int64
	for id, s := range f.byID {
		if s.EventID == eventID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	byUID map[string]*models.WebsiteUser
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byUID: map[string]*models.WebsiteUser{}}
}

func (f *fakeUsers) Upsert(_ context.Context, u *models.WebsiteUser) error {
	cp := *u
	f.byUID[u.UID] = &cp
	return nil
}

func (f *fakeUsers) Get(_ context.Context, uid string) (*models.WebsiteUser, error) {
	u, ok := f.byUID[uid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.WebsiteUser, error) {
	var out []models.WebsiteUser
	for _, u := range f.byUID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) SetRestriction(_ context.Context, uid, by, reason string, at int64) error {
	u, ok := f.byUID[uid]
	if !ok {
		u = &models.WebsiteUser{UID: uid}
		f.byUID[uid] = u
	}
	u.Restricted = true
	u.RestrictedBy = by
	u.RestrictedAt = at
	u.RestrictionReason = reason
	return nil
}

func (f *fakeUsers) ClearRestriction(_ context.Context, uid string) error {
	u, ok := f.byUID[uid]
	if !ok {
		u = &models.WebsiteUser{UID: uid}
		f.byUID[uid] = u
	}
	u.Restricted = false
	u.RestrictedBy = ""
	u.RestrictedAt = 0
	u.RestrictionReason = ""
	return nil
}

func (f *fakeUsers) SetDisplayName(_ context.Context, uid, name string) error {
	u, ok := f.byUID[uid]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.DisplayName = name
	return nil
}

type fakeProvider struct {
	accounts map[string]*models.Account
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]*models.Account{}}
}

func (f *fakeProvider) Register(_ context.Context, email, password, displayName string) (*models.Account, error) {
	a := &models.Account{UID: primitive.NewObjectID().Hex(), Email: email, DisplayName: displayName}
	f.accounts[a.UID] = a
	return a, nil
}

func (f *fakeProvider) Authenticate(_ context.Context, email, password string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (f *fakeProvider) GetAccount(_ context.Context, uid string) (*models.Account, error) {
	a, ok := f.accounts[uid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeProvider) SetClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	a, ok := f.accounts[uid]
	if !ok {
		return apperrors.ErrNotFound
	}
	if a.Claims == nil {
		a.Claims = map[string]interface{}{}
	}
	for k, v := range claims {
		a.Claims[k] = v
	}
	return nil
}

func (f *fakeProvider) UnsetClaims(_ context.Context, uid string, keys ...string) error {
	a, ok := f.accounts[uid]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, k := range keys {
		delete(a.Claims, k)
	}
	return nil
}

func (f *fakeProvider) UpdateDisplayName(_ context.Context, uid, name string) error {
	a, ok := f.accounts[uid]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.DisplayName = name
	return nil
}

type fakeAudit struct {
	entries []models.AuditEntry
}

func newFakeAudit() *fakeAudit { return &fakeAudit{} }

func (f *fakeAudit) Append(_ context.Context, e *models.AuditEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAudit) List(_ context.Context, limit int64) ([]models.AuditEntry, error) {
	out := make([]models.AuditEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeAudit) last() *models.AuditEntry {
	if len(f.entries) == 0 {
		return nil
	}
	return &f.entries[len(f.entries)-1]
}
