package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/scholar-notify/internal/domain"
)

// DeliveryRecordRepo provides typed DynamoDB operations for the delivery records table.
// The table is append-only: there is no update or delete.
type DeliveryRecordRepo struct {
	client    API
	tableName string
}

func NewDeliveryRecordRepo(client API, tableName string) *DeliveryRecordRepo {
	return &DeliveryRecordRepo{client: client, tableName: tableName}
}

// Append writes rec, refusing to overwrite an existing record id.
func (r *DeliveryRecordRepo) Append(ctx context.Context, rec *domain.DeliveryRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal delivery record: %w", err)
	}
	item[fieldCreatedKey] = createdKey(rec.CreatedAt, rec.RecordID)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldRecordID},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("delivery record %s: %w", rec.RecordID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

// ListByUser pages through the per-user GSI, newest createdAt first.
func (r *DeliveryRecordRepo) ListByUser(ctx context.Context, userID string) ([]domain.DeliveryRecord, error) {
	items, err := queryByUser(ctx, r.client, r.tableName, indexRecordsByUser, userID)
	if err != nil {
		return nil, err
	}
	records := []domain.DeliveryRecord{}
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("unmarshal delivery records: %w", err)
	}
	return records, nil
}

// queryByUser collects every page of a per-user GSI query in descending range-key order.
func queryByUser(ctx context.Context, client API, table, index, userID string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(client, &dynamodb.QueryInput{
		TableName:                aws.String(table),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#uid = :uid"),
		ExpressionAttributeNames: map[string]string{"#uid": fieldUserID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
