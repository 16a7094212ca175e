package app

import (
	"context"
	"time"

	"beer_machine/internal/models"
	"beer_machine/internal/pkg/security"
)

const minPasswordLength = 6

// ProcessCreateUser registers a ledger-only account (member or non-member).
// Such accounts carry no password and can never authenticate.
func (app *App) ProcessCreateUser(ctx context.Context, username string, credits int, dateOfBirth *time.Time, userType string) (*models.User, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}
	if userType == "" {
		userType = models.UserTypeMember
	}
	if userType != models.UserTypeMember && userType != models.UserTypeNonMember {
		return nil, ErrInvalidUserType
	}

	user := &models.User{
		Username:    username,
		Credits:     credits,
		DateOfBirth: dateOfBirth,
		UserType:    userType,
		IsActive:    true,
	}
	return app.db.CreateUser(ctx, user)
}

// ProcessGetUser retrieves a single user by id.
func (app *App) ProcessGetUser(ctx context.Context, userID int32) (*models.User, error) {
	return app.db.GetUserByID(ctx, userID)
}

// ProcessListUsers returns a page of users matching the filter.
func (app *App) ProcessListUsers(ctx context.Context, filter models.UserFilter) (*models.UsersResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	users, total, err := app.db.ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.UsersResponse{
		Users:      users,
		Pagination: paginate(total, filter.Page, filter.Limit),
	}, nil
}

// UserUpdate carries the optional fields of a member update. Nil fields stay
// untouched; credit changes only ever happen through the ledger operations.
type UserUpdate struct {
	Username    *string
	DateOfBirth *time.Time
	UserType    *string
	IsActive    *bool
}

// ProcessUpdateUser applies a partial update to a member account. Admin
// accounts are managed through the admin endpoints only.
func (app *App) ProcessUpdateUser(ctx context.Context, userID int32, update UserUpdate) (*models.User, error) {
	user, err := app.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserType == models.UserTypeAdmin {
		return nil, ErrCannotModifyAdmin
	}

	if update.Username != nil && *update.Username != "" {
		user.Username = *update.Username
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = update.DateOfBirth
	}
	if update.UserType != nil && *update.UserType != "" {
		if *update.UserType != models.UserTypeMember && *update.UserType != models.UserTypeNonMember &&
			*update.UserType != models.UserTypeSeller {
			return nil, ErrInvalidUserType
		}
		user.UserType = *update.UserType
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err = app.db.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProcessCreateAdmin registers a staff account with a hashed password.
func (app *App) ProcessCreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingUsernameOrPassword
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash := security.HashPassword(password)
	user := &models.User{
		Username: username,
		Password: &hash,
		UserType: models.UserTypeAdmin,
		IsActive: true,
	}
	return app.db.CreateUser(ctx, user)
}

// ProcessListAdmins lists active admin accounts.
func (app *App) ProcessListAdmins(ctx context.Context) ([]models.User, error) {
	filter := models.UserFilter{UserType: models.UserTypeAdmin, Page: 1, Limit: 100}
	admins, _, err := app.db.ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	active := make([]models.User, 0, len(admins))
	for _, admin := range admins {
		if admin.IsActive {
			active = append(active, admin)
		}
	}
	return active, nil
}

// ProcessUpdateProfile updates the caller's own username and/or password.
// Changing the password requires proving knowledge of the current one.
func (app *App) ProcessUpdateProfile(ctx context.Context, userID int32, username, password, currentPassword string) (*models.User, error) {
	user, err := app.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if password != "" {
		if currentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if user.Password == nil {
			return nil, ErrInvalidCredentials
		}
		if err = security.CheckPassword(*user.Password, currentPassword); err != nil {
			return nil, err
		}
		if len(password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash := security.HashPassword(password)
		user.Password = &hash
	}
	if username != "" {
		user.Username = username
	}

	if err = app.db.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProcessUpdateAdmin updates another admin's username and/or password.
func (app *App) ProcessUpdateAdmin(ctx context.Context, actorID, targetID int32, username, password string) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrOwnAccount
	}

	user, err := app.db.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeAdmin {
		return nil, ErrAdminNotFound
	}

	if password != "" {
		if len(password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash := security.HashPassword(password)
		user.Password = &hash
	}
	if username != "" {
		user.Username = username
	}

	if err = app.db.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProcessDeactivateAdmin deactivates another admin account, refusing to
// remove the last active one.
func (app *App) ProcessDeactivateAdmin(ctx context.Context, actorID, targetID int32) error {
	if actorID == targetID {
		return ErrOwnAccount
	}

	user, err := app.db.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user.UserType != models.UserTypeAdmin {
		return ErrAdminNotFound
	}

	activeAdmins, err := app.db.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if activeAdmins <= 1 {
		return ErrLastActiveAdmin
	}

	user.IsActive = false
	return app.db.UpdateUser(ctx, user)
}
