package services

//go:generate mockgen -source=admin.go -destination=mock_admin_test.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/policy"
	"github.com/sbilibin2017/bankcore/internal/security"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidStatus   = errors.New("invalid account status")
)

// AccountLister reads accounts for the administration views.
type AccountLister interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error)
	List(ctx context.Context, filter models.AccountFilter) ([]models.AccountDB, error)
}

// AccountAdminWriter applies administrative changes to an account row.
type AccountAdminWriter interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateRoles(ctx context.Context, id uuid.UUID, isAdmin bool, status string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, email string, p models.Profile) error
}

// AuditRecorder appends zero-amount audit rows.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, actorID, targetID uuid.UUID, txType, details string) (*models.TransactionDB, error)
}

// SessionEnder force-ends sessions.
type SessionEnder interface {
	End(ctx context.Context, a *models.AccountDB) error
}

// DivisionResolver turns division codes into display names.
type DivisionResolver interface {
	Name(ctx context.Context, kind, code string) string
}

// TransactionSearcher runs the manager transaction search.
type TransactionSearcher interface {
	Search(ctx context.Context, filter models.TransactionFilter) ([]models.TransactionDB, error)
}

// NewAccountInput holds an account created by an admin or manager.
type NewAccountInput struct {
	Username string
	Email    string
	Password string
}

// ProfileEdit is an admin edit of another account. Division names are resolved from the codes.
type ProfileEdit struct {
	Email   string
	Status  string
	Profile models.Profile
}

// AdminService implements the admin and manager operations on other accounts.
// Every operation on an existing account is checked with policy.Authorize first.
type AdminService struct {
	tx        TxRunner
	accounts  AccountLister
	creator   AccountCreator
	writer    AccountAdminWriter
	audit     AuditRecorder
	sessions  SessionEnder
	divisions DivisionResolver
	search    TransactionSearcher
}

func NewAdminService(
	tx TxRunner,
	accounts AccountLister,
	creator AccountCreator,
	writer AccountAdminWriter,
	audit AuditRecorder,
	sessions SessionEnder,
	divisions DivisionResolver,
	search TransactionSearcher,
) *AdminService {
	return &AdminService{
		tx:        tx,
		accounts:  accounts,
		creator:   creator,
		writer:    writer,
		audit:     audit,
		sessions:  sessions,
		divisions: divisions,
		search:    search,
	}
}

// ListUsers returns plain user accounts.
func (svc *AdminService) ListUsers(ctx context.Context) ([]models.AccountDB, error) {
	no := false
	return svc.accounts.List(ctx, models.AccountFilter{IsAdmin: &no, IsManager: &no})
}

// ListAdmins returns admins that are not managers.
func (svc *AdminService) ListAdmins(ctx context.Context) ([]models.AccountDB, error) {
	yes, no := true, false
	return svc.accounts.List(ctx, models.AccountFilter{IsAdmin: &yes, IsManager: &no})
}

// target loads the account and checks the actor may manage it.
func (svc *AdminService) target(ctx context.Context, actor *models.AccountDB, id uuid.UUID) (*models.AccountDB, error) {
	account, err := svc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if err := policy.Authorize(actor, account); err != nil {
		logger.Log.Errorw("permission denied",
			"actor", actor.Username, "target", account.Username)
		return nil, err
	}
	return account, nil
}

// SetStatus activates or deactivates an account and records the change.
func (svc *AdminService) SetStatus(ctx context.Context, actor *models.AccountDB, id uuid.UUID, status string) (*models.AccountDB, error) {
	if status != models.StatusActive && status != models.StatusDeactivated && status != models.StatusPending {
		return nil, ErrInvalidStatus
	}

	var account *models.AccountDB
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		account, err = svc.target(ctx, actor, id)
		if err != nil {
			return err
		}
		if account.Status == status {
			return nil
		}
		if err := svc.writer.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		details := fmt.Sprintf("%s %s changed status of %s: %s → %s",
			roleLabel(actor), actor.Username, account.Username, account.Status, status)
		if _, err := svc.audit.RecordAudit(ctx, actor.ID, id, models.TxStatusChange, details); err != nil {
			return err
		}
		account.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ForceLogout ends the target's session.
func (svc *AdminService) ForceLogout(ctx context.Context, actor *models.AccountDB, id uuid.UUID) error {
	return svc.tx.Do(ctx, func(ctx context.Context) error {
		account, err := svc.target(ctx, actor, id)
		if err != nil {
			return err
		}
		if err := svc.sessions.End(ctx, account); err != nil {
			return err
		}
		details := fmt.Sprintf("%s %s forcefully logged out %s", roleLabel(actor), actor.Username, account.Username)
		_, err = svc.audit.RecordAudit(ctx, actor.ID, id, models.TxForceLogout, details)
		return err
	})
}

// EditProfile updates e-mail, status and profile of the target and records a
// user_edit row listing the changed fields. Nothing is recorded when nothing changed.
func (svc *AdminService) EditProfile(ctx context.Context, actor *models.AccountDB, id uuid.UUID, edit ProfileEdit) (*models.AccountDB, error) {
	if edit.Status != models.StatusActive && edit.Status != models.StatusDeactivated && edit.Status != models.StatusPending {
		return nil, ErrInvalidStatus
	}

	var updated models.AccountDB
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		old, err := svc.target(ctx, actor, id)
		if err != nil {
			return err
		}

		updated = *old
		updated.Email = edit.Email
		updated.Status = edit.Status
		updated.Profile = svc.resolveNames(ctx, old.Profile, edit.Profile)

		details := DiffProfiles(old, &updated)
		if details == "" {
			return nil
		}

		if err := svc.writer.UpdateProfile(ctx, id, updated.Email, updated.Profile); err != nil {
			return err
		}
		if old.Status != updated.Status {
			if err := svc.writer.UpdateStatus(ctx, id, updated.Status); err != nil {
				return err
			}
		}
		_, err = svc.audit.RecordAudit(ctx, actor.ID, id, models.TxUserEdit, details)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// resolveNames keeps the stored name for unchanged codes and looks up the rest.
func (svc *AdminService) resolveNames(ctx context.Context, old, next models.Profile) models.Profile {
	resolve := func(kind, oldCode, oldName, code string) string {
		switch {
		case code == "":
			return ""
		case code == oldCode && oldName != "":
			return oldName
		default:
			return svc.divisions.Name(ctx, kind, code)
		}
	}
	next.RegionName = resolve(models.DivisionRegion, old.RegionCode, old.RegionName, next.RegionCode)
	next.ProvinceName = resolve(models.DivisionProvince, old.ProvinceCode, old.ProvinceName, next.ProvinceCode)
	next.CityName = resolve(models.DivisionCity, old.CityCode, old.CityName, next.CityCode)
	next.BarangayName = resolve(models.DivisionBarangay, old.BarangayCode, old.BarangayName, next.BarangayCode)
	return next
}

// CreateAccount creates an active user account that must change its password at first login.
func (svc *AdminService) CreateAccount(ctx context.Context, actor *models.AccountDB, in NewAccountInput) (*models.AccountDB, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return svc.create(ctx, in, false)
}

// CreateAdmin creates an active admin account. Only managers may do this.
func (svc *AdminService) CreateAdmin(ctx context.Context, actor *models.AccountDB, in NewAccountInput) (*models.AccountDB, error) {
	if err := policy.RequireManager(actor); err != nil {
		return nil, err
	}
	return svc.create(ctx, in, true)
}

func (svc *AdminService) create(ctx context.Context, in NewAccountInput, isAdmin bool) (*models.AccountDB, error) {
	account := &models.AccountDB{
		Username:            in.Username,
		Email:               in.Email,
		Balance:             models.DefaultOpeningBalance,
		Status:              models.StatusActive,
		IsAdmin:             isAdmin,
		ForcePasswordChange: true,
	}
	if err := security.SetAccountPassword(account, in.Password); err != nil {
		return nil, err
	}
	if err := svc.creator.Create(ctx, account); err != nil {
		logger.Log.Errorw("failed to create account", "username", in.Username, "err", err)
		return nil, err
	}
	return account, nil
}

// SetAdmin promotes or demotes the target. Promotion also activates the account.
// A change that leaves the account as it is writes nothing and records no audit row.
func (svc *AdminService) SetAdmin(ctx context.Context, actor *models.AccountDB, id uuid.UUID, promote bool) (*models.AccountDB, error) {
	if err := policy.RequireManager(actor); err != nil {
		return nil, err
	}

	var account *models.AccountDB
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		account, err = svc.target(ctx, actor, id)
		if err != nil {
			return err
		}

		if account.IsAdmin == promote && (!promote || account.Status == models.StatusActive) {
			return nil
		}

		status, txType := account.Status, models.TxAdminDemotion
		details := fmt.Sprintf("Manager %s removed admin privileges from %s", actor.Username, account.Username)
		if promote {
			status, txType = models.StatusActive, models.TxAdminPromotion
			details = fmt.Sprintf("Manager %s promoted user %s to admin", actor.Username, account.Username)
		}

		if err := svc.writer.UpdateRoles(ctx, id, promote, status); err != nil {
			return err
		}
		if _, err := svc.audit.RecordAudit(ctx, actor.ID, id, txType, details); err != nil {
			return err
		}
		account.IsAdmin, account.Status = promote, status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// SearchTransactions runs the manager search.
func (svc *AdminService) SearchTransactions(ctx context.Context, actor *models.AccountDB, filter models.TransactionFilter) ([]models.TransactionDB, error) {
	if err := policy.RequireManager(actor); err != nil {
		return nil, err
	}
	return svc.search.Search(ctx, filter)
}

func roleLabel(a *models.AccountDB) string {
	if policy.RoleOf(a) == policy.RoleManager {
		return "Manager"
	}
	return "Admin"
}
