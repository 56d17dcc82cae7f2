package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/brightclass/verify-api/internal/domain"
)

// InviteRepo provides typed DynamoDB operations for the teacher-invites table.
// PK: invite_id.
type InviteRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInviteRepo(client *dynamodb.Client, tableName string) *InviteRepo {
	return &InviteRepo{client: client, tableName: tableName}
}

func (r *InviteRepo) Put(ctx context.Context, inv *domain.TeacherInvite) error {
	item, err := attributevalue.MarshalMap(inv)
	if err != nil {
		return fmt.Errorf("marshal invite: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InviteRepo) Get(ctx context.Context, inviteID string) (*domain.TeacherInvite, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("invite_id", inviteID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("invite not found: %w", domain.ErrNotFound)
	}
	var inv domain.TeacherInvite
	if err := attributevalue.UnmarshalMap(out.Item, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ConsumeUse atomically increments the invite's use counter, guarded by a
// condition on uses < max_uses so two concurrent redemptions cannot spend the
// same final use. Returns ErrConflict when the invite is already exhausted.
func (r *InviteRepo) ConsumeUse(ctx context.Context, inviteID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("invite_id", inviteID),
		UpdateExpression:    aws.String("SET #u = #u + :one"),
		ConditionExpression: aws.String("#u < #m"),
		ExpressionAttributeNames: map[string]string{
			"#u": "uses",
			"#m": "max_uses",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("invite exhausted: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}
