package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/normalization"
	"github.com/ayushlabs/ayush-backend/internal/ojas"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/types"
	"github.com/ayushlabs/ayush-backend/internal/utils"
)

type JWTClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, phone, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(ctx, user)
	if vErr := utils.InputValidation(ctx, "registration", as.userRepo, as.log, user, "", ""); vErr != nil {
		return fmt.Errorf("%w: %s", apierr.ErrInvalidInput, vErr.Error())
	}
	if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
		return hErr
	}

	// New users start at the base vitality score with an empty ritual plan;
	// classification fills the plan in later.
	now := time.Now()
	user.ID = uuid.New()
	user.OjasScore = ojas.BaseScore
	user.CurrentDay = 1
	user.OnboardingComplete = false
	user.WeeklyTasks = datatypes.NewJSONSlice([]types.WeeklyTask{})
	user.GrowthHistory = datatypes.NewJSONSlice([]types.GrowthSample{{Score: ojas.BaseScore, Time: now}})
	user.AssessmentHistory = datatypes.NewJSONSlice([]types.AssessmentEntry{})

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
			return fmt.Errorf("Failed to create user in postgres: %w", ucErr)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, phone, password string) (string, string, error) {
	phone = normalization.ParsePhone(phone)
	password = normalization.ParseInputString(password)

	if vErr := utils.InputValidation(ctx, "login", as.userRepo, as.log, &types.User{}, phone, password); vErr != nil {
		return "", "", fmt.Errorf("%w: %s", apierr.ErrInvalidInput, vErr.Error())
	}

	users, usErr := as.userRepo.GetByPhones(ctx, nil, []string{phone})
	if usErr != nil {
		return "", "", fmt.Errorf("Error retrieving user by phone: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("%w: invalid credentials", apierr.ErrUnauthorized)
	}
	user := users[0]
	if vpErr := utils.VerifyPassword(user.Password, password); vpErr != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", apierr.ErrUnauthorized)
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("Failed to check user tokens: %w", ftErr)
		}
		expired := make([]*types.UserToken, 0, len(foundTokens))
		for _, tok := range foundTokens {
			if tok != nil && tok.ExpiresAt.Before(time.Now()) {
				expired = append(expired, tok)
			}
		}
		if len(expired) > 0 {
			if dtErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, expired); dtErr != nil {
				return fmt.Errorf("Failed to delete expired user tokens: %w", dtErr)
			}
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("Generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			as.log.Warn("Create User Token Error", "error", ctErr)
			return fmt.Errorf("Create User Token Error: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return "", "", fmt.Errorf("%w: no request data found in context", apierr.ErrUnauthorized)
	}
	if rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token missing from request data", apierr.ErrUnauthorized)
	}

	var accessToken string
	var newRefreshTokenStr string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			as.log.Warn("Error fetching refresh token", "error", ftErr)
			return fmt.Errorf("Error fetching refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return fmt.Errorf("%w: unknown refresh token", apierr.ErrUnauthorized)
		}
		existingToken := foundTokens[0]
		if existingToken.ExpiresAt.Before(time.Now()) {
			if dtErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dtErr != nil {
				as.log.Warn("Refresh token expired, error deleting", "error", dtErr)
				return fmt.Errorf("Refresh token expired, error deleting: %w", dtErr)
			}
			return fmt.Errorf("%w: refresh token expired", apierr.ErrUnauthorized)
		}
		var user types.User
		if err := tx.WithContext(ctx).Where("id = ?", existingToken.UserID).First(&user).Error; err != nil {
			as.log.Warn("Failed to load user for refresh", "error", err)
			return fmt.Errorf("Failed to load user for refresh: %w", err)
		}
		tok, genErr := as.generateAccessToken(&user)
		if genErr != nil {
			as.log.Warn("Failed to generate new access token", "error", genErr)
			return fmt.Errorf("Failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshTokenStr = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  tok,
			RefreshToken: newRefreshTokenStr,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			as.log.Warn("Failed to create new user token", "error", cErr)
			return fmt.Errorf("Failed to create new user token: %w", cErr)
		}
		if dErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dErr != nil {
			as.log.Warn("Failed to remove old refresh token", "error", dErr)
			return fmt.Errorf("Failed to remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshTokenStr, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("%w: no request data found in context", apierr.ErrUnauthorized)
	}
	if rd.TokenString == "" {
		return fmt.Errorf("%w: token string missing from request data", apierr.ErrUnauthorized)
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			as.log.Warn("Error finding user token from token string", "error", ftErr)
			return fmt.Errorf("Error finding user token from token string: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if tdErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, foundTokens); tdErr != nil {
			as.log.Warn("Error deleting user token", "error", tdErr)
			return fmt.Errorf("Error deleting user token: %w", tdErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Phone: user.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("%w: empty token", apierr.ErrUnauthorized)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("%w: failed to parse token: %s", apierr.ErrUnauthorized, err.Error())
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("%w: invalid or expired JWT token", apierr.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid user id in token", apierr.ErrUnauthorized)
	}
	var refreshTokenStr string
	foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		as.log.Warn("Error fetching user token by access token", "error", ftErr)
		return ctx, fmt.Errorf("Failed to fetch user token by access token: %w", ftErr)
	}
	if len(foundTokens) > 0 {
		refreshTokenStr = foundTokens[0].RefreshToken
	}
	rd := &requestdata.RequestData{
		UserID:       userID,
		Phone:        claims.Phone,
		TokenString:  tokenString,
		RefreshToken: refreshTokenStr,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
