// Package validate 提供同步的表单校验。
// 所有规则都是纯函数：返回字段路径到提示文案的映射，空映射表示通过。
// 校验失败的输入永远不会触发任何后端调用。
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// Schema 选择一组校验规则。
type Schema int

const (
	SignIn Schema = iota
	SignUp
	Profile
	LinkList
)

// Credentials 是登录/注册表单的候选值。
type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileInput 是资料表单的候选值。
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// LinkInput 是链接列表中的单项候选值。
type LinkInput struct {
	Platform string
	URL      string
}

// Errors 以字段路径为键保存面向用户的错误文案。
type Errors map[string]string

// Valid 在没有任何字段错误时为真。
func (e Errors) Valid() bool { return len(e) == 0 }

// Check 按选定的规则集校验候选值。
// 传入与 Schema 不匹配的类型或未知的 Schema 属于调用方错误，直接 panic。
func Check(schema Schema, value any) Errors {
	switch schema {
	case SignIn:
		return checkCredentials(value.(Credentials), false)
	case SignUp:
		return checkCredentials(value.(Credentials), true)
	case Profile:
		return checkProfile(value.(ProfileInput))
	case LinkList:
		return checkLinkList(value.([]LinkInput))
	default:
		panic(fmt.Sprintf("validate: unknown schema %d", schema))
	}
}

func checkCredentials(in Credentials, signUp bool) Errors {
	errs := Errors{}

	if msg := emailError(in.Email); msg != "" {
		errs["email"] = msg
	}
	if len(in.Password) < 8 {
		errs["password"] = "Please check again"
	}
	if signUp && in.ConfirmPassword != in.Password {
		errs["confirmPassword"] = "Passwords don't match"
	}

	return errs
}

func checkProfile(in ProfileInput) Errors {
	errs := Errors{}

	if len(strings.TrimSpace(in.FirstName)) < 2 {
		errs["firstName"] = "Can't be empty"
	}
	if len(strings.TrimSpace(in.LastName)) < 2 {
		errs["lastName"] = "Can't be empty"
	}
	if msg := emailError(in.Email); msg != "" {
		errs["email"] = msg
	}

	return errs
}

// checkLinkList 校验每一项的平台与链接非空，空列表本身是合法的。
func checkLinkList(links []LinkInput) Errors {
	errs := Errors{}

	for i, link := range links {
		if strings.TrimSpace(link.Platform) == "" {
			errs[fmt.Sprintf("links.%d.platform", i)] = "This field cannot be empty"
		}
		if strings.TrimSpace(link.URL) == "" {
			errs[fmt.Sprintf("links.%d.url", i)] = "This field cannot be empty"
		}
	}

	return errs
}

func emailError(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "Can't be empty"
	}
	if addr, err := mail.ParseAddress(trimmed); err != nil || addr.Address != trimmed {
		return "Please check again"
	}
	return ""
}
