package user

import (
	"context"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/db"
	"gymcore/internal/logger"
	"gymcore/internal/metrics"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) error
	Verify(ctx context.Context, req VerifyRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error
	List(ctx context.Context, claims *auth.Claims, limit, offset int) ([]UserWithRoles, error)
	AssignRole(ctx context.Context, userID int, roleName string) error
	RevokeRole(ctx context.Context, userID int, roleName string) error
	FindOrCreateByEmail(ctx context.Context, username, emailAddr string) (*User, []string, error)
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
}

type service struct {
	repo      Repository
	pending   PendingStore
	mailer    Mailer
	jwtSecret string
}

func NewService(repo Repository, pending PendingStore, mailer Mailer, jwtSecret string) Service {
	return &service{
		repo:      repo,
		pending:   pending,
		mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) error {
	taken, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return err
	}
	if taken {
		return api.InvalidInput("username already exists")
	}

	taken, err = s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return api.InvalidInput("email already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	reg := PendingRegistration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
	}
	if err := s.pending.Save(ctx, reg, code); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(ctx, req.Email, req.Username, code); err != nil {
		return api.Internal("failed to send verification email")
	}

	metrics.RecordRegistration("pending")
	logger.Infof("Registration pending for %s", req.Email)
	return nil
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (*User, error) {
	reg, err := s.pending.Consume(ctx, req.Email, req.Code)
	if err != nil {
		return nil, api.InvalidInput("invalid or expired verification code")
	}

	// Re-check uniqueness: someone may have claimed the name or email while
	// the code sat in the inbox.
	taken, err := s.repo.UsernameExists(ctx, reg.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, api.InvalidInput("username already exists")
	}

	taken, err = s.repo.EmailExists(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, api.InvalidInput("email already registered")
	}

	user, err := s.repo.Create(ctx, reg.Username, reg.Email, reg.PasswordHash, reg.Phone)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.InvalidInput("email already registered")
		}
		return nil, err
	}

	if role, err := s.repo.FindRoleByName(ctx, auth.RoleMember); err == nil {
		if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
			logger.Errorf("Failed to assign default role to user %d: %v", user.ID, err)
		}
	}

	metrics.RecordRegistration("verified")
	logger.Infof("User %s verified and created (id=%d)", user.Email, user.ID)
	return user, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		metrics.RecordLogin("password", "failed")
		return nil, api.Unauthorized("invalid email or password")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.RecordLogin("password", "failed")
		return nil, api.Unauthorized("invalid email or password")
	}

	roles, err := s.repo.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = []string{auth.RoleMember}
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Email, roles, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin("password", "ok")
	return &LoginResponse{Token: token, User: *user, Roles: roles}, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return api.NotFound("user not found")
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return api.Unauthorized("current password is incorrect")
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// List returns every user (with roles) for admins, and only the caller's own
// record for everyone else.
func (s *service) List(ctx context.Context, claims *auth.Claims, limit, offset int) ([]UserWithRoles, error) {
	if claims.IsAdmin() {
		return s.repo.List(ctx, limit, offset)
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, api.NotFound("user not found")
	}

	roles, err := s.repo.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return []UserWithRoles{{User: *user, Roles: roles}}, nil
}

func (s *service) AssignRole(ctx context.Context, userID int, roleName string) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return api.NotFound("user not found")
	}

	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		return api.NotFound("role not found")
	}

	return s.repo.AssignRole(ctx, userID, role.ID)
}

func (s *service) RevokeRole(ctx context.Context, userID int, roleName string) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return api.NotFound("user not found")
	}

	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		return api.NotFound("role not found")
	}

	return s.repo.RevokeRole(ctx, userID, role.ID)
}

// FindOrCreateByEmail backs the OAuth callback: an unknown email becomes a
// fresh active user with the default role and an unusable password.
func (s *service) FindOrCreateByEmail(ctx context.Context, username, emailAddr string) (*User, []string, error) {
	if user, err := s.repo.FindByEmail(ctx, emailAddr); err == nil {
		roles, err := s.repo.RolesOf(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		if len(roles) == 0 {
			roles = []string{auth.RoleMember}
		}
		return user, roles, nil
	}

	// Random hash so password login can never succeed for this account.
	code, err := GenerateCode()
	if err != nil {
		return nil, nil, err
	}
	passwordHash, err := auth.HashPassword("oauth-" + code + emailAddr)
	if err != nil {
		return nil, nil, err
	}

	if taken, err := s.repo.UsernameExists(ctx, username); err != nil {
		return nil, nil, err
	} else if taken {
		username = username + "_" + code
	}

	user, err := s.repo.Create(ctx, username, emailAddr, passwordHash, "")
	if err != nil {
		return nil, nil, err
	}

	roles := []string{auth.RoleMember}
	if role, err := s.repo.FindRoleByName(ctx, auth.RoleMember); err == nil {
		if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
			logger.Errorf("Failed to assign default role to user %d: %v", user.ID, err)
		}
	}

	logger.Infof("User %s created via OAuth (id=%d)", user.Email, user.ID)
	return user, roles, nil
}
