package model

type User struct {
	Model
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"`
	NickName    string `gorm:"type:varchar(50);not null" json:"nick_name"`
	Affiliation string `gorm:"type:varchar(255)" json:"affiliation"` // 学校/公司
	Contact     string `gorm:"type:varchar(255)" json:"contact"`
	RoleID      int    `gorm:"default:0;not null" json:"role_id"`
	Blocked     bool   `gorm:"default:false;not null" json:"blocked"`
}

// partialUser 项目和投票列表中展示的用户字段
type partialUser struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	NickName string `json:"nick_name"`
}

func (partialUser) TableName() string {
	return "user"
}
