package example

import "time"

// Audit 审计字段，被 User 嵌入
type Audit struct {
	CreatedBy string
	CreatedAt time.Time
}

// User 生成全部四个方法
// @Common
type User struct {
	Audit
	ID    int64
	Name  string
	Email string
	log   string
}

// Account 通过 getter 输出属性
// @ToString(style=multi_line, bean=true)
// @Equals(instance_check=true)
type Account struct {
	owner   *User
	balance int64
}

func (a *Account) GetOwner() *User { return a.owner }

func (a *Account) IsEmpty() bool { return a.balance == 0 }
