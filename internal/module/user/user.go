package user

import (
	"errors"
	"strings"
	"unicode"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"
	"hackathon-vote-system/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	NickName    string `json:"nick_name" binding:"required,max=50"`
	Affiliation string `json:"affiliation" binding:"max=255"`
	Contact     string `json:"contact" binding:"max=255"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type LoginResp struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ValidatePasswordStrength 至少 8 位，同时包含字母和数字
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser 注册和 create-admin 命令共用，邮箱重复返回 ErrAlreadyExists
func CreateUser(db *gorm.DB, email, password, nickName string, roleID int) (*model.User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return nil, response.ErrInvalidRequest.WithTips(err.Error())
	}
	hash, err := tools.PasswordEncrypt(password)
	if err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	user := &model.User{
		Email:    normalizeEmail(email),
		Password: hash,
		NickName: strings.TrimSpace(nickName),
		RoleID:   roleID,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, response.ErrAlreadyExists.WithTips("邮箱已被注册")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return user, nil
}

func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	user, err := CreateUser(db, req.Email, req.Password, req.NickName, jwt.RoleUser)
	if err != nil {
		log.Warn("注册失败", "error", err, "email", req.Email)
		response.Fail(c, err)
		return
	}
	if req.Affiliation != "" || req.Contact != "" {
		if err := db.Model(user).Updates(model.User{Affiliation: req.Affiliation, Contact: req.Contact}).Error; err != nil {
			log.Error("保存用户资料失败", "error", err, "user_id", user.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}

	log.Info("用户注册成功", "user_id", user.ID, "email", user.Email)
	response.Success(c, LoginResp{Token: issueToken(user), User: user})
}

func issueToken(user *model.User) string {
	return jwt.CreateToken(jwt.Payload{
		UserID:   user.ID,
		NickName: user.NickName,
		RoleID:   user.RoleID,
	})
}

// Login 用户不存在和密码错误返回同一个错误
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.WithContext(c.Request.Context()).
		Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(user.Password, req.Password) {
		log.Warn("密码错误", "user_id", user.ID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}
	if user.Blocked {
		log.Warn("封禁用户尝试登录", "user_id", user.ID)
		response.Fail(c, response.ErrUserBlocked)
		return
	}

	log.Info("用户登录成功", "user_id", user.ID, "role_id", user.RoleID)
	response.Success(c, LoginResp{Token: issueToken(&user), User: &user})
}

func currentUser(c *gin.Context) (*model.User, bool) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	var user model.User
	if err := database.DB.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrTokenInvalid)
			return nil, false
		}
		log.Error("查询用户失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &user, true
}

func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, user)
}

func ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if err := ValidatePasswordStrength(req.NewPassword); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !tools.PasswordCompare(user.Password, req.OldPassword) {
		log.Warn("旧密码错误", "user_id", user.ID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	hash, err := tools.PasswordEncrypt(req.NewPassword)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Model(user).Update("password", hash).Error; err != nil {
		log.Error("更新密码失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户修改密码成功", "user_id", user.ID)
	response.Success(c)
}
