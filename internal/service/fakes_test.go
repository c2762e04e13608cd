package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/stripe/stripe-go/v81"

	"ayitichat/internal/billing"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/llm"
)

// testLogger discards everything; tests assert on behavior, not log lines.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeChatRepo stores chats in memory keyed by id.
type fakeChatRepo struct {
	chats      map[string]*models.Chat
	touched    []string
	createErr  error
	nextChatID int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*models.Chat)}
}

func (r *fakeChatRepo) CreateChat(ctx context.Context, chat *models.Chat) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextChatID++
	chat.ID = "chat-" + strconv.Itoa(r.nextChatID)
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *fakeChatRepo) GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	chat, ok := r.chats[chatID]
	if !ok || chat.UserID != userID {
		return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	cp := *chat
	return &cp, nil
}

func (r *fakeChatRepo) GetChatByID(ctx context.Context, chatID string) (*models.Chat, error) {
	chat, ok := r.chats[chatID]
	if !ok {
		return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	cp := *chat
	return &cp, nil
}

func (r *fakeChatRepo) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	out := []models.Chat{}
	for _, c := range r.chats {
		if c.UserID == userID && !c.IsArchived {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) UpdateChat(ctx context.Context, chat *models.Chat) error {
	if _, ok := r.chats[chat.ID]; !ok {
		return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrNotFound)
	}
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *fakeChatRepo) DeleteChat(ctx context.Context, chatID, userID string) error {
	chat, ok := r.chats[chatID]
	if !ok || chat.UserID != userID {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	delete(r.chats, chatID)
	return nil
}

func (r *fakeChatRepo) TouchChat(ctx context.Context, chatID string) error {
	r.touched = append(r.touched, chatID)
	return nil
}

// fakeMessageRepo records appended messages in order.
type fakeMessageRepo struct {
	messages  []models.Message
	appendErr error
}

func (r *fakeMessageRepo) AppendMessage(ctx context.Context, msg *models.Message) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	msg.ID = "msg-" + strconv.Itoa(len(r.messages)+1)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) CountMessages(ctx context.Context, chatID string) (int, error) {
	msgs, _ := r.ListMessages(ctx, chatID)
	return len(msgs), nil
}

// fakeTxManager runs the function directly. Repos in these tests don't look
// for a transaction in the context, so pass-through is enough.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

// fakeCompletions returns a canned reply and records every request.
type fakeCompletions struct {
	reply    string
	err      error
	requests []llm.CompletionRequest
}

func (c *fakeCompletions) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

// fakeProjectRepo stores projects keyed by id.
type fakeProjectRepo struct {
	projects      map[string]*models.Project
	statusUpdates []string
	nextID        int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) CreateProject(ctx context.Context, project *models.Project) error {
	r.nextID++
	project.ID = "project-" + strconv.Itoa(r.nextID)
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetProject(ctx context.Context, projectID, userID string) (*models.Project, error) {
	p, ok := r.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) UpdateStatus(ctx context.Context, projectID, status string, description *string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	p.Status = status
	if description != nil {
		p.Description = *description
	}
	r.statusUpdates = append(r.statusUpdates, projectID+":"+status)
	return nil
}

func (r *fakeProjectRepo) DeleteProject(ctx context.Context, projectID, userID string) error {
	p, ok := r.projects[projectID]
	if !ok || p.UserID != userID {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	delete(r.projects, projectID)
	return nil
}

// fakeFileRepo records bulk inserts.
type fakeFileRepo struct {
	files     []models.ProjectFile
	insertErr error
}

func (r *fakeFileRepo) BulkInsert(ctx context.Context, files []models.ProjectFile) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.files = append(r.files, files...)
	return nil
}

func (r *fakeFileRepo) ListFiles(ctx context.Context, projectID string) ([]models.ProjectFile, error) {
	out := []models.ProjectFile{}
	for _, f := range r.files {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	return out, nil
}

// fakeProjectCache is an in-memory stand-in for the Redis cache.
type fakeProjectCache struct {
	entries      map[string]*models.Project
	invalidated  []string
	sets         int
	hits, misses int
}

func newFakeProjectCache() *fakeProjectCache {
	return &fakeProjectCache{entries: make(map[string]*models.Project)}
}

func (c *fakeProjectCache) Get(ctx context.Context, projectID string) (*models.Project, bool) {
	p, ok := c.entries[projectID]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	cp := *p
	return &cp, true
}

func (c *fakeProjectCache) Set(ctx context.Context, project *models.Project) {
	c.sets++
	cp := *project
	c.entries[project.ID] = &cp
}

func (c *fakeProjectCache) Invalidate(ctx context.Context, projectID string) {
	c.invalidated = append(c.invalidated, projectID)
	delete(c.entries, projectID)
}

// fakePrefsRepo holds at most one row per user.
type fakePrefsRepo struct {
	rows    map[string]*models.UserPreferences
	upserts int
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{rows: make(map[string]*models.UserPreferences)}
}

func (r *fakePrefsRepo) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	p, ok := r.rows[userID]
	if !ok {
		return nil, fmt.Errorf("preferences for %s: %w", userID, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePrefsRepo) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	r.upserts++
	cp := *prefs
	r.rows[prefs.UserID] = &cp
	return nil
}

// fakeFamilyRepo stores family members in a slice.
type fakeFamilyRepo struct {
	members []models.FamilyMember
	nextID  int
}

func (r *fakeFamilyRepo) Create(ctx context.Context, member *models.FamilyMember) error {
	r.nextID++
	member.ID = "member-" + strconv.Itoa(r.nextID)
	r.members = append(r.members, *member)
	return nil
}

func (r *fakeFamilyRepo) List(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	out := []models.FamilyMember{}
	for _, m := range r.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeFamilyRepo) UpdateStatus(ctx context.Context, memberID, userID, status string) error {
	for i, m := range r.members {
		if m.ID == memberID && m.UserID == userID {
			r.members[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("family member %s: %w", memberID, domain.ErrNotFound)
}

func (r *fakeFamilyRepo) Delete(ctx context.Context, memberID, userID string) error {
	for i, m := range r.members {
		if m.ID == memberID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("family member %s: %w", memberID, domain.ErrNotFound)
}

// fakeOrderRepo records orders.
type fakeOrderRepo struct {
	orders []models.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = "order-" + strconv.Itoa(len(r.orders)+1)
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// fakeSubRepo keys subscriptions by stripe_subscription_id.
type fakeSubRepo struct {
	subs map[string]*models.Subscription
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{subs: make(map[string]*models.Subscription)}
}

func (r *fakeSubRepo) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("subscription for %s: %w", userID, domain.ErrNotFound)
}

func (r *fakeSubRepo) GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.StripeCustomerID == customerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("subscription for customer %s: %w", customerID, domain.ErrNotFound)
}

func (r *fakeSubRepo) Upsert(ctx context.Context, sub *models.Subscription) error {
	cp := *sub
	r.subs[sub.StripeSubscriptionID] = &cp
	return nil
}

// fakePMRepo keys payment methods by stripe id.
type fakePMRepo struct {
	methods map[string]*models.PaymentMethod
}

func newFakePMRepo() *fakePMRepo {
	return &fakePMRepo{methods: make(map[string]*models.PaymentMethod)}
}

func (r *fakePMRepo) List(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	out := []models.PaymentMethod{}
	for _, pm := range r.methods {
		if pm.UserID == userID {
			out = append(out, *pm)
		}
	}
	return out, nil
}

func (r *fakePMRepo) Upsert(ctx context.Context, pm *models.PaymentMethod) error {
	cp := *pm
	r.methods[pm.StripePaymentMethodID] = &cp
	return nil
}

// fakeInvRepo keys invoices by stripe id.
type fakeInvRepo struct {
	invoices map[string]*models.Invoice
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{invoices: make(map[string]*models.Invoice)}
}

func (r *fakeInvRepo) List(ctx context.Context, userID string) ([]models.Invoice, error) {
	out := []models.Invoice{}
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvRepo) Upsert(ctx context.Context, inv *models.Invoice) error {
	cp := *inv
	r.invoices[inv.StripeInvoiceID] = &cp
	return nil
}

// fakeShareRepo stores share links keyed by token.
type fakeShareRepo struct {
	shares  map[string]*models.SharedConversation
	deleted []string
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[string]*models.SharedConversation)}
}

func (r *fakeShareRepo) Create(ctx context.Context, share *models.SharedConversation) error {
	if _, ok := r.shares[share.ShareToken]; ok {
		return fmt.Errorf("share token: %w", domain.ErrConflict)
	}
	share.ID = "share-" + strconv.Itoa(len(r.shares)+1)
	cp := *share
	r.shares[share.ShareToken] = &cp
	return nil
}

func (r *fakeShareRepo) GetByToken(ctx context.Context, token string) (*models.SharedConversation, error) {
	share, ok := r.shares[token]
	if !ok {
		return nil, fmt.Errorf("share %s: %w", token, domain.ErrNotFound)
	}
	cp := *share
	return &cp, nil
}

func (r *fakeShareRepo) DeleteByChat(ctx context.Context, chatID, userID string) error {
	r.deleted = append(r.deleted, chatID)
	for token, s := range r.shares {
		if s.ChatID == chatID {
			delete(r.shares, token)
		}
	}
	return nil
}

// fakeGuestUsage counts per guest id, ignoring the daily window.
type fakeGuestUsage struct {
	counts map[string]int
	err    error
}

func newFakeGuestUsage() *fakeGuestUsage {
	return &fakeGuestUsage{counts: make(map[string]int)}
}

func (r *fakeGuestUsage) Increment(ctx context.Context, guestID string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.counts[guestID]++
	return r.counts[guestID], nil
}

func (r *fakeGuestUsage) Count(ctx context.Context, guestID string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.counts[guestID], nil
}

// fakeGateway returns canned Stripe responses.
type fakeGateway struct {
	session    *billing.CheckoutSession
	sessionErr error
	lastParams *billing.CheckoutParams

	event    stripe.Event
	eventErr error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params *billing.CheckoutParams) (*billing.CheckoutSession, error) {
	g.lastParams = params
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return g.session, nil
}

func (g *fakeGateway) ParseEvent(payload []byte, signature string) (stripe.Event, error) {
	if g.eventErr != nil {
		return stripe.Event{}, g.eventErr
	}
	return g.event, nil
}
