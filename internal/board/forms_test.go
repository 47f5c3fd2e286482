package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	valid := []string{"Passw0rd!", "Aa1@aaaa", "Zz9&Zz9&Zz9&Zz9&Zz9&"}
	invalid := []string{
		"",
		"Pa0!",                  // short
		"Passw0rd!Passw0rd!xx1", // 21 chars
		"password0!",            // no upper
		"PASSWORD0!",            // no lower
		"Password!!",            // no digit
		"Password00",            // no special
		"Passw0rd#",             // # not allowed
		"Passw0rd! ",            // space
	}
	for _, p := range valid {
		assert.True(t, ValidPassword(p), p)
	}
	for _, p := range invalid {
		assert.False(t, ValidPassword(p), p)
	}
}

func TestValidate_Login(t *testing.T) {
	assert.NoError(t, Validate(LoginForm{Email: "kim@agora.dev", Password: "Passw0rd!"}))

	err := Validate(LoginForm{Email: "kim", Password: "weak"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr, 2)
	assert.Equal(t, "please enter a valid email address", verr.Field("Email"))
	assert.Contains(t, verr.Field("Password"), "8 to 20 characters")

	err = Validate(LoginForm{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "please enter your email", verr.Field("Email"))
	assert.Equal(t, "please enter your password", verr.Field("Password"))
}

func TestValidate_Signup(t *testing.T) {
	ok := SignupForm{Email: "kim@agora.dev", Password: "Passw0rd!", PasswordConfirm: "Passw0rd!", Nickname: "kim"}
	assert.NoError(t, Validate(ok))

	var verr ValidationError

	bad := ok
	bad.PasswordConfirm = "Passw0rd?"
	require.ErrorAs(t, Validate(bad), &verr)
	assert.Equal(t, "passwords do not match", verr.Field("PasswordConfirm"))

	bad = ok
	bad.Nickname = "two words"
	require.ErrorAs(t, Validate(bad), &verr)
	assert.Equal(t, "nickname must not contain spaces", verr.Field("Nickname"))

	bad = ok
	bad.Nickname = "elevenchars"
	require.ErrorAs(t, Validate(bad), &verr)
	assert.Equal(t, "nickname can be at most 10 characters", verr.Field("Nickname"))

	bad = ok
	bad.Nickname = "닉네임은열글자까지"
	assert.NoError(t, Validate(bad))

	bad = ok
	bad.ProfileImageURL = "ftp://img"
	require.ErrorAs(t, Validate(bad), &verr)
	assert.Equal(t, "please enter a valid URL", verr.Field("ProfileImageURL"))
}

func TestValidate_Post(t *testing.T) {
	assert.NoError(t, Validate(PostForm{Title: "hello", Content: "world", Images: []string{"https://img/a.png"}}))

	var verr ValidationError
	require.ErrorAs(t, Validate(PostForm{Title: "this title is longer than 26", Content: "x"}), &verr)
	assert.Equal(t, "title can be at most 26 characters", verr.Field("Title"))

	require.ErrorAs(t, Validate(PostForm{Images: []string{"http://ok", "nope"}}), &verr)
	assert.Equal(t, "please enter a title", verr.Field("Title"))
	assert.Equal(t, "please enter the content", verr.Field("Content"))
	assert.Equal(t, "please enter a valid URL", verr.Field("Images"))
	assert.Equal(t, "please enter a title; please enter the content; please enter a valid URL", verr.Error())
}

func TestNormalize(t *testing.T) {
	f := PostForm{Title: "  hi ", Content: "\tbody\n", Images: []string{" http://a "}}
	f.normalize()
	assert.Equal(t, PostForm{Title: "hi", Content: "body", Images: []string{"http://a"}}, f)
}

func TestNormalize_LeavesCallerImages(t *testing.T) {
	images := []string{" http://a ", "http://b\n"}
	f := PostForm{Title: "t", Content: "c", Images: images}
	f.normalize()
	assert.Equal(t, []string{"http://a", "http://b"}, f.Images)
	assert.Equal(t, []string{" http://a ", "http://b\n"}, images)
}
