package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fabrica/api/internal/auth"
	"fabrica/api/internal/authpw"
	"fabrica/api/internal/batch"
	"fabrica/api/internal/calday"
	"fabrica/api/internal/config"
	"fabrica/api/internal/lifecycle"
	"fabrica/api/internal/rbac"
	"fabrica/api/internal/seqcode"
	"fabrica/api/internal/store"
	"fabrica/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Role         string
	JTI          string
	ExpiresAt    time.Time
}

// Conflict is one PLANNED block sitting on a non-working day.
type Conflict struct {
	BlockID string `json:"id"`
	Reason  string `json:"reason"`
}

const (
	ReasonWeekend = "weekend"
	ReasonHoliday = "holiday"
)

type CreateBlockInput struct {
	ArticleCode  string `json:"articleCode"`
	ArticleDesc  string `json:"articleDesc"`
	ClientName   string `json:"clientName"`
	OrderNumber  string `json:"orderNumber"`
	OrderedUnits int    `json:"orderedUnits"`
	ServedUnits  int    `json:"servedUnits"`
	PendingUnits int    `json:"pendingUnits"`
	Units        int    `json:"units"`
	Deadline     string `json:"deadline"`
	OrderDate    string `json:"orderDate"`
	ErpID        string `json:"erpId"`
}

type PlanBlockInput struct {
	Date    string `json:"date"`
	Reactor string `json:"reactor"`
	Shift   string `json:"shift"`
}

type RecordExecutionInput struct {
	RealKg        *float64 `json:"realKg"`
	RealDuration  *float64 `json:"realDuration"`
	OperatorNotes string   `json:"operatorNotes"`
}

type ReactorInput struct {
	Name          string `json:"name"`
	Plant         string `json:"plant"`
	CapacityKg    int    `json:"capacityKg"`
	DailyTargetKg int    `json:"dailyTargetKg"`
}

type HolidayInput struct {
	Day  string `json:"day"`
	Name string `json:"name"`
}

type MaintenanceWindowInput struct {
	ReactorName string `json:"reactorName"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

type dataStore interface {
	Ping(context.Context) error

	CreateUser(context.Context, store.User) error
	GetUserByEmail(context.Context, string) (store.User, error)
	GetUserByID(context.Context, string) (store.User, error)
	ListUsers(context.Context) ([]store.User, error)
	UpdateUserRole(context.Context, string, string) error

	AllocateCode(context.Context, string, int) (store.AllocatedCode, error)
	NextRevision(context.Context, string) (int, error)

	CreateBlock(context.Context, store.ProductionBlock) (store.ProductionBlock, error)
	GetBlock(context.Context, string) (store.ProductionBlock, error)
	ListBlocks(context.Context) ([]store.ProductionBlock, error)
	ListPlannedBlocks(context.Context) ([]store.ProductionBlock, error)
	PlanBlock(context.Context, string, calday.Day, string, string) (store.ProductionBlock, error)
	RecordExecution(context.Context, string, *float64, *float64, *string) (store.ProductionBlock, error)
	CancelBlock(context.Context, string) (store.ProductionBlock, error)
	SplitBlock(context.Context, string, int) ([]store.ProductionBlock, error)
	UnplanBlocks(context.Context, []string) (int, error)
	DeleteBlock(context.Context, string) error
	DeleteBlocks(context.Context, []string) (int, error)
	DeletePendingBlocks(context.Context) (int, error)
	DeleteAllBlocks(context.Context) (int, error)

	ListReactors(context.Context) ([]store.Reactor, error)
	ReplaceReactors(context.Context, []store.Reactor) error
	ListHolidays(context.Context) ([]store.Holiday, error)
	ReplaceHolidays(context.Context, []store.Holiday) error
	ListMaintenanceWindows(context.Context) ([]store.MaintenanceWindow, error)
	ReplaceMaintenanceWindows(context.Context, []store.MaintenanceWindow) error
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (string, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type Service struct {
	cfg          config.Config
	store        dataStore
	sessions     sessionStore
	authPassword *authpw.Service
	loc          *time.Location
	// batchLimit is consulted on every split so the limit can change
	// between calls without a restart.
	batchLimit func() int
	now        func() time.Time
}

func New(cfg config.Config, dataStore dataStore, sessions sessionStore, authPassword *authpw.Service) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	return &Service{
		cfg:          cfg,
		store:        dataStore,
		sessions:     sessions,
		authPassword: authPassword,
		loc:          loc,
		batchLimit:   func() int { return config.Load().BatchLimit },
		now:          time.Now,
	}, nil
}

func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	return s.store.Ping(ctx)
}

// storageCtx enforces the mandatory storage deadline on every store call.
func (s *Service) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.StorageTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// mapStoreError translates store and domain errors into the stable taxonomy.
// Infrastructure errors are logged with operation context and surfaced as a
// generic storage failure.
func mapStoreError(op string, err error) error {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var transitionErr *lifecycle.TransitionError
	if errors.As(err, &transitionErr) {
		return invalidTransitionError(string(transitionErr.From), string(transitionErr.To))
	}
	var noSplit *batch.ErrNoSplitNeeded
	if errors.As(err, &noSplit) {
		return noSplitNeededError(noSplit.Units, noSplit.Limit)
	}
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError("block")
	}
	if errors.Is(err, store.ErrConflict) {
		return conflictError("uniqueness violation")
	}
	log.Printf("storage error in %s: %v", op, err)
	return storageError()
}

// --- Sessions ---

func (s *Service) SignUp(ctx context.Context, req authpw.SignUpRequest) (Session, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	user, err := s.authPassword.SignUp(ctx, req)
	if err != nil {
		return Session{}, validationError(err.Error())
	}
	return s.createSession(ctx, user)
}

func (s *Service) SignIn(ctx context.Context, req authpw.SignInRequest) (Session, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	user, err := s.authPassword.SignIn(ctx, req)
	if err != nil {
		return Session{}, domainError(401, "UNAUTHORIZED", err.Error(), nil)
	}
	return s.createSession(ctx, user)
}

func (s *Service) createSession(ctx context.Context, user store.User) (Session, error) {
	jti := util.NewID("")
	expiresAt := s.now().Add(s.cfg.AccessTTL)
	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:  user.ID,
		Name: user.DisplayName,
		Role: string(rbac.Normalize(user.Role)),
		JTI:  jti,
		Exp:  expiresAt.Unix(),
	})
	if err != nil {
		log.Printf("storage error in createSession: issue token: %v", err)
		return Session{}, storageError()
	}

	refreshToken := util.NewID("")
	refreshExpiry := s.now().Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refreshToken), user.ID, refreshExpiry); err != nil {
		return Session{}, mapStoreError("createSession", err)
	}

	return Session{
		Token:        token,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		UserName:     user.DisplayName,
		Role:         string(rbac.Normalize(user.Role)),
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, domainError(401, "UNAUTHORIZED", "invalid or expired token", nil)
	}
	return Session{
		UserID:    claims.Sub,
		UserName:  claims.Name,
		Role:      string(rbac.Normalize(claims.Role)),
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

// Refresh rotates a refresh token and re-reads the user so role changes take
// effect immediately.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	hash := auth.HashToken(refreshToken)
	userID, err := s.sessions.LookupRefreshSession(ctx, hash)
	if err != nil {
		return Session{}, domainError(401, "UNAUTHORIZED", "invalid refresh token", nil)
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, domainError(401, "UNAUTHORIZED", "invalid refresh token", nil)
		}
		return Session{}, mapStoreError("refresh", err)
	}
	if err := s.sessions.RevokeRefreshSession(ctx, hash); err != nil {
		return Session{}, mapStoreError("refresh", err)
	}
	return s.createSession(ctx, user)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken)); err != nil {
		return mapStoreError("logout", err)
	}
	return nil
}

// --- Users (role administration) ---

func (s *Service) ListUsers(ctx context.Context) ([]store.User, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, mapStoreError("listUsers", err)
	}
	return users, nil
}

func (s *Service) UpdateUserRole(ctx context.Context, userID, role string) error {
	if string(rbac.Normalize(role)) != role {
		return validationError("unknown role " + role)
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.store.UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("user")
		}
		return mapStoreError("updateUserRole", err)
	}
	return nil
}

// --- Identifier allocation ---

// AllocateCode issues the next year-scoped code for a prefix. A conflict
// means a concurrent allocation won the same insert; the caller may retry.
func (s *Service) AllocateCode(ctx context.Context, prefix string) (string, error) {
	if !seqcode.ValidPrefix(prefix) {
		return "", validationError("prefix must be one or more uppercase letters")
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	yearDigits := seqcode.YearDigits(calday.FromTime(s.now(), s.loc).Year())
	allocated, err := s.store.AllocateCode(ctx, prefix, yearDigits)
	if err != nil {
		return "", mapStoreError("allocateCode", err)
	}
	return allocated.Code, nil
}

// NextRevision issues the next revision number for a code family, 0-based.
func (s *Service) NextRevision(ctx context.Context, code string) (int, error) {
	if _, _, _, err := seqcode.Parse(code); err != nil {
		return 0, validationError("malformed code " + code)
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	revision, err := s.store.NextRevision(ctx, code)
	if err != nil {
		return 0, mapStoreError("nextRevision", err)
	}
	return revision, nil
}

// --- Production blocks ---

func parseOptionalDay(value, field string) (*calday.Day, error) {
	if value == "" {
		return nil, nil
	}
	day, err := calday.Parse(value)
	if err != nil {
		return nil, validationError(field + " must be a YYYY-MM-DD date")
	}
	return &day, nil
}

func (s *Service) CreateBlock(ctx context.Context, input CreateBlockInput) (store.ProductionBlock, error) {
	if input.Units <= 0 {
		return store.ProductionBlock{}, validationError("units must be positive")
	}
	if input.ArticleCode == "" {
		return store.ProductionBlock{}, validationError("articleCode is required")
	}
	deadline, err := parseOptionalDay(input.Deadline, "deadline")
	if err != nil {
		return store.ProductionBlock{}, err
	}
	orderDate, err := parseOptionalDay(input.OrderDate, "orderDate")
	if err != nil {
		return store.ProductionBlock{}, err
	}

	block := store.ProductionBlock{
		ID:           util.NewID("blk"),
		ArticleCode:  input.ArticleCode,
		ArticleDesc:  input.ArticleDesc,
		ClientName:   input.ClientName,
		OrderNumber:  input.OrderNumber,
		OrderedUnits: input.OrderedUnits,
		ServedUnits:  input.ServedUnits,
		PendingUnits: input.PendingUnits,
		Units:        input.Units,
		Status:       lifecycle.Initial,
		Deadline:     deadline,
		OrderDate:    orderDate,
	}
	if input.ErpID != "" {
		erpID := input.ErpID
		block.ErpID = &erpID
	}

	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	created, err := s.store.CreateBlock(ctx, block)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.ProductionBlock{}, conflictError("a block with this erpId already exists")
		}
		return store.ProductionBlock{}, mapStoreError("createBlock", err)
	}
	return created, nil
}

func (s *Service) GetBlock(ctx context.Context, blockID string) (store.ProductionBlock, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	block, err := s.store.GetBlock(ctx, blockID)
	if err != nil {
		return store.ProductionBlock{}, mapStoreError("getBlock", err)
	}
	return block, nil
}

func (s *Service) ListBlocks(ctx context.Context) ([]store.ProductionBlock, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	blocks, err := s.store.ListBlocks(ctx)
	if err != nil {
		return nil, mapStoreError("listBlocks", err)
	}
	return blocks, nil
}

// PlanBlock assigns planning fields and moves the block to PLANNED. The
// returned warning is the soft calendar check: non-empty when the chosen date
// is a weekend or holiday, without blocking the plan.
func (s *Service) PlanBlock(ctx context.Context, blockID string, input PlanBlockInput) (store.ProductionBlock, string, error) {
	if input.Date == "" || input.Reactor == "" || input.Shift == "" {
		return store.ProductionBlock{}, "", validationError("date, reactor and shift are required")
	}
	day, err := calday.Parse(input.Date)
	if err != nil {
		return store.ProductionBlock{}, "", validationError("date must be a YYYY-MM-DD date")
	}

	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	block, err := s.store.PlanBlock(ctx, blockID, day, input.Reactor, input.Shift)
	if err != nil {
		return store.ProductionBlock{}, "", mapStoreError("planBlock", err)
	}

	warning := ""
	if day.IsWeekend() {
		warning = ReasonWeekend
	} else {
		holidays, err := s.store.ListHolidays(ctx)
		if err != nil {
			// The plan already committed; a failed lookup only costs the warning.
			log.Printf("storage error in planBlock: list holidays: %v", err)
		}
		for _, holiday := range holidays {
			if holiday.Day.Equal(day) {
				warning = ReasonHoliday
				break
			}
		}
	}
	return block, warning, nil
}

func (s *Service) RecordExecution(ctx context.Context, blockID string, input RecordExecutionInput) (store.ProductionBlock, error) {
	if input.RealKg == nil && input.RealDuration == nil {
		return store.ProductionBlock{}, validationError("realKg or realDuration is required")
	}
	if input.RealKg != nil && *input.RealKg < 0 {
		return store.ProductionBlock{}, validationError("realKg must not be negative")
	}
	if input.RealDuration != nil && *input.RealDuration < 0 {
		return store.ProductionBlock{}, validationError("realDuration must not be negative")
	}
	var notes *string
	if input.OperatorNotes != "" {
		value := input.OperatorNotes
		notes = &value
	}

	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	block, err := s.store.RecordExecution(ctx, blockID, input.RealKg, input.RealDuration, notes)
	if err != nil {
		return store.ProductionBlock{}, mapStoreError("recordExecution", err)
	}
	return block, nil
}

func (s *Service) CancelBlock(ctx context.Context, blockID string) (store.ProductionBlock, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	block, err := s.store.CancelBlock(ctx, blockID)
	if err != nil {
		return store.ProductionBlock{}, mapStoreError("cancelBlock", err)
	}
	return block, nil
}

// SplitBlock partitions an oversized block into capacity-bounded sub-batches
// and deletes the source, all in one storage transaction. The batch limit is
// read fresh on every call.
func (s *Service) SplitBlock(ctx context.Context, blockID string) ([]store.ProductionBlock, error) {
	limit := s.batchLimit()
	if limit <= 0 {
		return nil, validationError("batch limit must be positive")
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	children, err := s.store.SplitBlock(ctx, blockID, limit)
	if err != nil {
		return nil, mapStoreError("splitBlock", err)
	}
	return children, nil
}

func (s *Service) DeleteBlock(ctx context.Context, blockID string) error {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.store.DeleteBlock(ctx, blockID); err != nil {
		return mapStoreError("deleteBlock", err)
	}
	return nil
}

// DeleteBlocks removes blocks by id, best effort: missing ids are skipped
// and the deleted count reported.
func (s *Service) DeleteBlocks(ctx context.Context, blockIDs []string) (int, error) {
	if len(blockIDs) == 0 {
		return 0, validationError("ids must not be empty")
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	count, err := s.store.DeleteBlocks(ctx, blockIDs)
	if err != nil {
		return 0, mapStoreError("deleteBlocks", err)
	}
	return count, nil
}

func (s *Service) ClearPending(ctx context.Context) (int, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	count, err := s.store.DeletePendingBlocks(ctx)
	if err != nil {
		return 0, mapStoreError("clearPending", err)
	}
	return count, nil
}

func (s *Service) ClearAll(ctx context.Context) (int, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	count, err := s.store.DeleteAllBlocks(ctx)
	if err != nil {
		return 0, mapStoreError("clearAll", err)
	}
	return count, nil
}

// --- Calendar conflicts ---

// DetectConflicts reports PLANNED blocks sitting on non-working days. A
// block is flagged for exactly one reason; the weekend check wins when a
// holiday falls on a weekend.
func (s *Service) DetectConflicts(ctx context.Context) ([]Conflict, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	blocks, err := s.store.ListPlannedBlocks(ctx)
	if err != nil {
		return nil, mapStoreError("detectConflicts", err)
	}
	holidays, err := s.store.ListHolidays(ctx)
	if err != nil {
		return nil, mapStoreError("detectConflicts", err)
	}

	holidaySet := make(map[string]bool, len(holidays))
	for _, holiday := range holidays {
		holidaySet[holiday.Day.String()] = true
	}

	conflicts := make([]Conflict, 0)
	for _, block := range blocks {
		if block.PlannedDate == nil {
			continue
		}
		day := *block.PlannedDate
		switch {
		case day.IsWeekend():
			conflicts = append(conflicts, Conflict{BlockID: block.ID, Reason: ReasonWeekend})
		case holidaySet[day.String()]:
			conflicts = append(conflicts, Conflict{BlockID: block.ID, Reason: ReasonHoliday})
		}
	}
	return conflicts, nil
}

// ResolveConflicts unplans the listed blocks in one atomic bulk update and
// returns how many were actually moved back to PENDING.
func (s *Service) ResolveConflicts(ctx context.Context, blockIDs []string) (int, error) {
	if len(blockIDs) == 0 {
		return 0, validationError("ids must not be empty")
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	count, err := s.store.UnplanBlocks(ctx, blockIDs)
	if err != nil {
		return 0, mapStoreError("resolveConflicts", err)
	}
	return count, nil
}

// --- Reactors, holidays, maintenance windows ---

func (s *Service) ListReactors(ctx context.Context) ([]store.Reactor, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	reactors, err := s.store.ListReactors(ctx)
	if err != nil {
		return nil, mapStoreError("listReactors", err)
	}
	return reactors, nil
}

func (s *Service) ReplaceReactors(ctx context.Context, inputs []ReactorInput) error {
	reactors := make([]store.Reactor, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if input.Name == "" {
			return validationError("reactor name is required")
		}
		if seen[input.Name] {
			return validationError("duplicate reactor name " + input.Name)
		}
		seen[input.Name] = true
		if input.CapacityKg < 0 || input.DailyTargetKg < 0 {
			return validationError("reactor capacity and daily target must not be negative")
		}
		reactors = append(reactors, store.Reactor{
			Name:          input.Name,
			Plant:         input.Plant,
			CapacityKg:    input.CapacityKg,
			DailyTargetKg: input.DailyTargetKg,
		})
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.store.ReplaceReactors(ctx, reactors); err != nil {
		return mapStoreError("replaceReactors", err)
	}
	return nil
}

func (s *Service) ListHolidays(ctx context.Context) ([]store.Holiday, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	holidays, err := s.store.ListHolidays(ctx)
	if err != nil {
		return nil, mapStoreError("listHolidays", err)
	}
	return holidays, nil
}

func (s *Service) ReplaceHolidays(ctx context.Context, inputs []HolidayInput) error {
	holidays := make([]store.Holiday, 0, len(inputs))
	for _, input := range inputs {
		day, err := calday.Parse(input.Day)
		if err != nil {
			return validationError("holiday day must be a YYYY-MM-DD date")
		}
		holidays = append(holidays, store.Holiday{Day: day, Name: input.Name})
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.store.ReplaceHolidays(ctx, holidays); err != nil {
		return mapStoreError("replaceHolidays", err)
	}
	return nil
}

func (s *Service) ListMaintenanceWindows(ctx context.Context) ([]store.MaintenanceWindow, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	windows, err := s.store.ListMaintenanceWindows(ctx)
	if err != nil {
		return nil, mapStoreError("listMaintenanceWindows", err)
	}
	return windows, nil
}

func (s *Service) ReplaceMaintenanceWindows(ctx context.Context, inputs []MaintenanceWindowInput) error {
	windows := make([]store.MaintenanceWindow, 0, len(inputs))
	for _, input := range inputs {
		if input.ReactorName == "" {
			return validationError("maintenance window reactorName is required")
		}
		start, err := calday.Parse(input.StartDate)
		if err != nil {
			return validationError("maintenance window startDate must be a YYYY-MM-DD date")
		}
		end, err := calday.Parse(input.EndDate)
		if err != nil {
			return validationError("maintenance window endDate must be a YYYY-MM-DD date")
		}
		if end.Before(start) {
			return validationError("maintenance window endDate must not be before startDate")
		}
		windows = append(windows, store.MaintenanceWindow{
			ReactorName: input.ReactorName,
			StartDate:   start,
			EndDate:     end,
			Reason:      input.Reason,
		})
	}
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.store.ReplaceMaintenanceWindows(ctx, windows); err != nil {
		return mapStoreError("replaceMaintenanceWindows", err)
	}
	return nil
}
