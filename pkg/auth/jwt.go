package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/config"
)

var (
	// ErrTokenInvalid 令牌无法解析或签名错误
	ErrTokenInvalid = errors.New("无效的令牌")
	// ErrTokenRevoked 令牌已注销
	ErrTokenRevoked = errors.New("令牌已被撤销")
)

// Claims 自定义JWT声明，RegisteredClaims.ID 为令牌唯一ID
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT 令牌签发与校验
type JWT struct {
	secret    []byte
	issuer    string
	expire    time.Duration
	ids       *snowflake.Node
	blacklist Blacklist
}

// NewJWT 创建令牌管理器
func NewJWT(cfg config.JWTConfig, blacklist Blacklist) (*JWT, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("JWT密钥未配置")
	}
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return nil, fmt.Errorf("创建雪花节点失败: %w", err)
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	return &JWT{
		secret:    []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		expire:    expire,
		ids:       node,
		blacklist: blacklist,
	}, nil
}

// Issue 为用户签发访问令牌
func (j *JWT) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        j.ids.Generate().String(),
			Issuer:    j.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expire)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Parse 校验令牌并检查黑名单
func (j *JWT) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := j.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("查询令牌黑名单失败: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke 注销令牌，黑名单记录保留到令牌过期
func (j *JWT) Revoke(ctx context.Context, tokenString string) error {
	claims, err := j.parse(tokenString)
	if err != nil {
		return err
	}
	return j.blacklist.Add(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (j *JWT) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
