// Package hash 封装了基于 bcrypt 的密码哈希。
package hash

import "golang.org/x/crypto/bcrypt"

// HashPassword 使用 bcrypt 默认代价生成密码哈希。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash 以常量时间比较明文密码与哈希。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash 用于未知账号的比较，使其耗时与真实账号一致。
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("netqa-dummy-password"), bcrypt.DefaultCost)

// CompareDummy 对固定哈希执行一次比较，结果总是 false。
func CompareDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
