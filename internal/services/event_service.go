package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/rs/zerolog/log"
)

// 記事イベントの種類
const (
	ArticleCreated     = "article_created"
	ArticleUpdated     = "article_updated"
	ArticleDeleted     = "article_deleted"
	ArticleFavorited   = "article_favorited"
	ArticleUnfavorited = "article_unfavorited"
)

// ArticleEvent キューに送る記事イベント
type ArticleEvent struct {
	Type       string    `json:"type"`
	ArticleID  uint      `json:"articleId"`
	Slug       string    `json:"slug"`
	AuthorID   uint      `json:"authorId"`
	ActorID    uint      `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewArticleEvent 記事とイベントを起こしたユーザーからイベントを作成
func NewArticleEvent(eventType string, article *models.Article, actorID uint) ArticleEvent {
	return ArticleEvent{
		Type:       eventType,
		ArticleID:  article.ID,
		Slug:       article.Slug,
		AuthorID:   article.AuthorID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// ArticleEventPublisher 記事イベントの送信先
type ArticleEventPublisher interface {
	// 送信に失敗してもエラーは返さずログに残す
	Publish(ctx context.Context, event ArticleEvent)
}

// sqsEventPublisher SQSに送信するArticleEventPublisher
type sqsEventPublisher struct {
	client   sqsiface.SQSAPI
	queueURL string
}

// NewSQSEventPublisher SQSクライアントからArticleEventPublisherを作成
func NewSQSEventPublisher(client sqsiface.SQSAPI, queueURL string) ArticleEventPublisher {
	return &sqsEventPublisher{
		client:   client,
		queueURL: queueURL,
	}
}

// NewArticleEventPublisher 設定からArticleEventPublisherを作成（キューURLが空なら送信しない）
func NewArticleEventPublisher(cfg config.AWSConfig) (ArticleEventPublisher, error) {
	if cfg.ArticleEventsQueueURL == "" {
		return NoopEventPublisher{}, nil
	}

	awsSession, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, err
	}

	return NewSQSEventPublisher(sqs.New(awsSession), cfg.ArticleEventsQueueURL), nil
}

// Publish イベントをJSONにしてSQSに送信
func (p *sqsEventPublisher) Publish(ctx context.Context, event ArticleEvent) {
	logger := log.Ctx(ctx).With().Str("event", event.Type).Uint("article_id", event.ArticleID).Logger()

	messageJSON, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("記事イベントのJSONエンコードに失敗しました")
		return
	}

	// SQSにメッセージを送信
	_, err = p.client.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageJSON)),
	})
	if err != nil {
		logger.Error().Err(err).Msg("記事イベントの送信に失敗しました")
		return
	}

	logger.Debug().Msg("記事イベントを送信しました")
}

// NoopEventPublisher 何も送信しないArticleEventPublisher
type NoopEventPublisher struct{}

// Publish 何もしない
func (NoopEventPublisher) Publish(context.Context, ArticleEvent) {}
