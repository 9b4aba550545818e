package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/scholar-notify/internal/domain"
)

// AppNotificationRepo provides typed DynamoDB operations for the in-app feed table.
type AppNotificationRepo struct {
	client    API
	tableName string
}

func NewAppNotificationRepo(client API, tableName string) *AppNotificationRepo {
	return &AppNotificationRepo{client: client, tableName: tableName}
}

func (r *AppNotificationRepo) Put(ctx context.Context, n *domain.AppNotification) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal app notification: %w", err)
	}
	item[fieldCreatedKey] = createdKey(n.CreatedAt, n.NotificationID)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldNotificationID},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("app notification %s: %w", n.NotificationID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *AppNotificationRepo) Get(ctx context.Context, notificationID string) (*domain.AppNotification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldNotificationID, notificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("app notification %s: %w", notificationID, domain.ErrNotFound)
	}
	var n domain.AppNotification
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser queries the per-user GSI, newest createdAt first.
func (r *AppNotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.AppNotification, error) {
	items, err := queryByUser(ctx, r.client, r.tableName, indexNotificationsByUser, userID)
	if err != nil {
		return nil, err
	}
	notifications := []domain.AppNotification{}
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("unmarshal app notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead sets status READ and stamps readAt/updatedAt. Repeating it overwrites
// the timestamps; concurrent callers resolve last-write-wins.
func (r *AppNotificationRepo) MarkRead(ctx context.Context, notificationID string, at time.Time) (*domain.AppNotification, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldStatus:    domain.StatusRead,
		fieldReadAt:    at,
		fieldUpdatedAt: at,
	})
	if err != nil {
		return nil, err
	}
	ue.Names["#id"] = fieldNotificationID
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldNotificationID, notificationID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("app notification %s: %w", notificationID, domain.ErrNotFound)
		}
		return nil, err
	}
	var n domain.AppNotification
	if err := attributevalue.UnmarshalMap(out.Attributes, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes the notification. Deleting a missing id is not an error.
func (r *AppNotificationRepo) Delete(ctx context.Context, notificationID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldNotificationID, notificationID),
	})
	return err
}
