package services_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/services"
)

type fakeUploader struct {
	publicID string
	body     string
	err      error
}

func (f *fakeUploader) UploadAvatar(_ context.Context, file io.Reader, publicID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(file)
	f.body = string(data)
	f.publicID = publicID
	return "https://res.cloudinary.com/demo/image/upload/" + publicID + ".jpg", nil
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")

	uploader := &fakeUploader{}
	users := services.NewUserService(env.users, uploader)

	user, err := users.UploadImage(ctx, jake.ID, strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadImage に失敗しました: %v", err)
	}
	if uploader.body != "png-bytes" {
		t.Errorf("アップロード内容が不正です: %q", uploader.body)
	}
	if !strings.HasPrefix(uploader.publicID, "user_") {
		t.Errorf("public_idが不正です: %q", uploader.publicID)
	}
	if !strings.Contains(user.Image, uploader.publicID) {
		t.Errorf("imageが更新されていません: %q", user.Image)
	}

	stored, err := users.GetByID(ctx, jake.ID)
	if err != nil {
		t.Fatalf("GetByID に失敗しました: %v", err)
	}
	if stored.Image != user.Image {
		t.Errorf("imageが保存されていません: %q", stored.Image)
	}
}

func TestUploadImageFailures(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")

	_, err := services.NewUserService(env.users, nil).UploadImage(ctx, jake.ID, strings.NewReader("x"))
	assertStatus(t, err, http.StatusServiceUnavailable)

	boom := errors.New("cloudinary down")
	_, err = services.NewUserService(env.users, &fakeUploader{err: boom}).UploadImage(ctx, jake.ID, strings.NewReader("x"))
	if !errors.Is(err, boom) {
		t.Errorf("アップロードエラーが返っていません: %v", err)
	}

	_, err = services.NewUserService(env.users, &fakeUploader{}).UploadImage(ctx, 9999, strings.NewReader("x"))
	assertStatus(t, err, http.StatusNotFound)
}
