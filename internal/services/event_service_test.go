package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

// fakeSQS SendMessageWithContextだけを実装したSQSクライアント
type fakeSQS struct {
	sqsiface.SQSAPI
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessageWithContext(_ aws.Context, input *sqs.SendMessageInput, _ ...request.Option) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("1")}, nil
}

func TestSQSEventPublisher(t *testing.T) {
	client := &fakeSQS{}
	publisher := services.NewSQSEventPublisher(client, "https://sqs.ap-northeast-1.amazonaws.com/123/article-events")

	article := &models.Article{ID: 7, Slug: "hello-abc", AuthorID: 3}
	publisher.Publish(context.Background(), services.NewArticleEvent(services.ArticleFavorited, article, 5))

	if len(client.inputs) != 1 {
		t.Fatalf("メッセージが送信されていません: %d", len(client.inputs))
	}
	input := client.inputs[0]
	if aws.StringValue(input.QueueUrl) != "https://sqs.ap-northeast-1.amazonaws.com/123/article-events" {
		t.Errorf("キューURLが不正です: %s", aws.StringValue(input.QueueUrl))
	}

	var event services.ArticleEvent
	if err := json.Unmarshal([]byte(aws.StringValue(input.MessageBody)), &event); err != nil {
		t.Fatalf("メッセージがJSONではありません: %v", err)
	}
	if event.Type != services.ArticleFavorited || event.ArticleID != 7 || event.AuthorID != 3 || event.ActorID != 5 {
		t.Errorf("イベント内容が不正です: %+v", event)
	}
}

func TestSQSEventPublisherSwallowsErrors(t *testing.T) {
	client := &fakeSQS{err: errors.New("throttled")}
	publisher := services.NewSQSEventPublisher(client, "queue")

	// 送信エラーでもパニックせず戻る
	publisher.Publish(context.Background(), services.ArticleEvent{Type: services.ArticleDeleted})
	if len(client.inputs) != 1 {
		t.Errorf("送信が試みられていません")
	}
}

func TestNewArticleEventPublisherWithoutQueue(t *testing.T) {
	publisher, err := services.NewArticleEventPublisher(config.AWSConfig{Region: "ap-northeast-1"})
	if err != nil {
		t.Fatalf("NewArticleEventPublisher に失敗しました: %v", err)
	}
	if _, ok := publisher.(services.NoopEventPublisher); !ok {
		t.Errorf("キューURLが空ならNoopになるべきです: %T", publisher)
	}
}
