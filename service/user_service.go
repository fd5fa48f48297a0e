package service

import (
	"errors"
	"time"

	"notekeeper/config"
	"notekeeper/dao"
	"notekeeper/internal/apperr"
	"notekeeper/internal/auth"
	"notekeeper/model"
	"notekeeper/utils"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// UserService bundles the DAO, session storage and authentication helpers.
type UserService struct {
	dao     *dao.UserDAO
	Session *auth.SessionManager
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(dao *dao.UserDAO, rdb *redis.Client) *UserService {
	return &UserService{
		dao:     dao,
		Session: auth.NewSessionManager(rdb),
	}
}

// Register persists a freshly created user after hashing the password.
// A duplicate email surfaces as apperr.ErrConflict; the failed INSERT is the
// only statement, so no partial row survives the rollback.
func (s *UserService) Register(name, email, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user := &model.User{Name: name, Email: email, PasswordHash: hashed}
	if err := s.dao.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.ErrConflict, "email already registered")
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return apperr.Wrap(apperr.ErrConflict, "email already registered")
		}
		return err
	}
	return nil
}

// Authenticate looks the user up by exact email and verifies the password
// hash. A missing row and a hash mismatch return the same error so the
// response never leaks which field was wrong; any other store failure
// propagates unchanged.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.dao.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// StartSession establishes the current-user binding and returns the signed
// cookie token plus its lifetime. remember extends the session beyond the
// default browser-session horizon.
func (s *UserService) StartSession(user *model.User, remember bool) (string, time.Duration, error) {
	cfg := config.GlobalConfig.Session
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if remember {
		ttl = time.Duration(cfg.RememberHours) * time.Hour
	}
	sid, err := s.Session.Create(user.ID, ttl)
	if err != nil {
		return "", 0, err
	}
	token, err := auth.NewSessionToken(cfg.Secret, user.ID, sid, ttl)
	if err != nil {
		return "", 0, err
	}
	return token, ttl, nil
}

// EndSession clears the current-user binding for the given cookie token.
// An unparseable token is treated as already logged out.
func (s *UserService) EndSession(token string) {
	claims, err := auth.ParseSessionToken(config.GlobalConfig.Session.Secret, token)
	if err != nil {
		return
	}
	_ = s.Session.Destroy(claims.SessionID)
}

// GetByID loads a user by primary key for display purposes.
func (s *UserService) GetByID(id uint64) (*model.User, error) {
	return s.dao.GetByID(id)
}
