package repository

import (
	"context"
	"time"

	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentRecordsTableName = "payment_records"
	recordsPaymentIDIndex          = "payment_id-index"
)

type paymentRecordItem struct {
	ID          string  `dynamodbav:"id"`
	PaymentID   string  `dynamodbav:"payment_id"`
	UserID      string  `dynamodbav:"user_id"`
	BillingType string  `dynamodbav:"billing_type"`
	Value       float64 `dynamodbav:"value"`
	Status      string  `dynamodbav:"status"`
	CreatedAt   string  `dynamodbav:"created_at"`

	ProviderResponseRaw string `dynamodbav:"provider_response_raw,omitempty"`
}

// PaymentRecordDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_id-index (PK: payment_id)
type PaymentRecordDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb *dynamodb.Client) *PaymentRecordDynamoRepository {
	return &PaymentRecordDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENT_RECORDS_TABLE", defaultPaymentRecordsTableName),
	}
}

func (r *PaymentRecordDynamoRepository) Create(ctx context.Context, rec entities.PaymentRecord) (entities.PaymentRecord, error) {
	it := toPaymentRecordItem(rec)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return rec, nil
}

func (r *PaymentRecordDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(recordsPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentRecordItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentRecordItem(it))
	}
	return items, nil
}

func toPaymentRecordItem(rec entities.PaymentRecord) paymentRecordItem {
	return paymentRecordItem{
		ID:          rec.ID,
		PaymentID:   rec.PaymentID,
		UserID:      rec.UserID,
		BillingType: string(rec.BillingType),
		Value:       rec.Value,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339Nano),

		ProviderResponseRaw: string(rec.ProviderResponseRaw),
	}
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	dt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.PaymentRecord{
		ID:          it.ID,
		PaymentID:   it.PaymentID,
		UserID:      it.UserID,
		BillingType: entities.BillingType(it.BillingType),
		Value:       it.Value,
		Status:      it.Status,
		CreatedAt:   dt,

		ProviderResponseRaw: []byte(it.ProviderResponseRaw),
	}
}
