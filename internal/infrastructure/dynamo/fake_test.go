package dynamo

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-process stand-in for a single DynamoDB table keyed by one string attribute.
// It understands just enough of the expressions the repositories send.
type fakeAPI struct {
	mu       sync.Mutex
	keyField string
	pageSize int
	items    map[string]map[string]types.AttributeValue
	queries  []*dynamodb.QueryInput
	failWith error
}

func newFakeAPI(keyField string) *fakeAPI {
	return &fakeAPI{keyField: keyField, items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeAPI) idOf(item map[string]types.AttributeValue) string {
	if s, ok := item[f.keyField].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

// rangeOf is the index range value of a stored item.
func (f *fakeAPI) rangeOf(id string) string {
	if s, ok := f.items[id][fieldCreatedKey].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	id := f.idOf(in.Item)
	if _, exists := f.items[id]; exists && in.ConditionExpression != nil &&
		strings.HasPrefix(*in.ConditionExpression, "attribute_not_exists") {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("item exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &dynamodb.GetItemOutput{Item: f.items[f.idOf(in.Key)]}, nil
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.queries = append(f.queries, in)

	uid := in.ExpressionAttributeValues[":uid"].(*types.AttributeValueMemberS).Value
	var ids []string
	for id, item := range f.items {
		if u, ok := item[fieldUserID].(*types.AttributeValueMemberS); ok && u.Value == uid {
			ids = append(ids, id)
		}
	}
	descending := in.ScanIndexForward != nil && !*in.ScanIndexForward
	sort.Slice(ids, func(i, j int) bool {
		a, b := f.rangeOf(ids[i]), f.rangeOf(ids[j])
		if descending {
			return a > b
		}
		return a < b
	})
	if in.ExclusiveStartKey != nil {
		start := f.idOf(in.ExclusiveStartKey)
		for i, id := range ids {
			if id == start {
				ids = ids[i+1:]
				break
			}
		}
	}

	out := &dynamodb.QueryOutput{}
	if f.pageSize > 0 && len(ids) > f.pageSize {
		ids = ids[:f.pageSize]
		last := ids[len(ids)-1]
		out.LastEvaluatedKey = strKey(f.keyField, last)
		out.LastEvaluatedKey[fieldCreatedKey] = f.items[last][fieldCreatedKey]
	}
	for _, id := range ids {
		out.Items = append(out.Items, f.items[id])
	}
	return out, nil
}

func (f *fakeAPI) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	item, ok := f.items[f.idOf(in.Key)]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	updated := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		updated[k] = v
	}
	for placeholder, field := range in.ExpressionAttributeNames {
		if !strings.HasPrefix(placeholder, "#f") {
			continue
		}
		updated[field] = in.ExpressionAttributeValues[":v"+strings.TrimPrefix(placeholder, "#f")]
	}
	f.items[f.idOf(in.Key)] = updated
	return &dynamodb.UpdateItemOutput{Attributes: updated}, nil
}

func (f *fakeAPI) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	delete(f.items, f.idOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

type fakeCreator struct {
	created []string
	err     error
}

func (c *fakeCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	c.created = append(c.created, *in.TableName)
	return &dynamodb.CreateTableOutput{}, c.err
}

var errBoom = errors.New("boom")
