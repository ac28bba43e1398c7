package jwt

import (
	"time"

	"hackathon-vote-system/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const (
	RoleUser  = 0
	RoleAdmin = 1
)

// PayloadKey gin.Context 中保存已验证身份的键
const PayloadKey = "payload"

type Payload struct {
	UserID   uint   `json:"user_id"`
	NickName string `json:"nick_name"`
	RoleID   int    `json:"role_id"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
			Issuer:    "hackathon-vote-system",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// HS256 只会在密钥类型不对时失败
		panic(err)
	}
	return token
}

// ParseToken 校验签名和过期时间
func ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}

func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(PayloadKey)
	userPayload, exist = payload.(*Claims)
	return
}
