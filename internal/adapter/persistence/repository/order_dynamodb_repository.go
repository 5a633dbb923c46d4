package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cargoflow/internal/domain/entities"
	"cargoflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName  = "orders"
	orderNumberIndexName    = "order_number-index"
	trackingNumberIndexName = "tracking_number-index"
	userIDIndexName         = "user_id-index"
)

type orderItem struct {
	ID                  string `dynamodbav:"id"`
	OrderNumber         string `dynamodbav:"order_number"`
	UserID              string `dynamodbav:"user_id"`
	PickupAddress       string `dynamodbav:"pickup_address"`
	DeliveryAddress     string `dynamodbav:"delivery_address"`
	PackageWeight       string `dynamodbav:"package_weight"`
	PackageLength       string `dynamodbav:"package_length,omitempty"`
	PackageWidth        string `dynamodbav:"package_width,omitempty"`
	PackageHeight       string `dynamodbav:"package_height,omitempty"`
	PackageDescription  string `dynamodbav:"package_description"`
	TransportMode       string `dynamodbav:"transport_type"`
	UrgentDelivery      bool   `dynamodbav:"urgent_delivery"`
	SpecialInstructions string `dynamodbav:"special_instructions,omitempty"`
	BaseCost            string `dynamodbav:"base_cost"`
	UrgentSurcharge     string `dynamodbav:"urgent_surcharge"`
	TotalCost           string `dynamodbav:"total_cost"`
	Status              string `dynamodbav:"status"`
	TrackingNumber      string `dynamodbav:"tracking_number,omitempty"`
	CreatedAt           string `dynamodbav:"created_at"`
	UpdatedAt           string `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI order_number-index: order_number
//   - GSI tracking_number-index: tracking_number
//   - GSI user_id-index: user_id
//
// Lookups return a zero-value Order when nothing matches; the use case owns
// the not-found semantics.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := toOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	return r.queryOneByIndex(ctx, orderNumberIndexName, "order_number", orderNumber)
}

func (r *OrderDynamoRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (entities.Order, error) {
	return r.queryOneByIndex(ctx, trackingNumberIndexName, "tracking_number", trackingNumber)
}

func (r *OrderDynamoRepository) queryOneByIndex(ctx context.Context, index, attribute, value string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByUserID(ctx context.Context, userID string, status entities.OrderStatus, limit int32) ([]entities.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(userIDIndexName),
		KeyConditionExpression: aws.String("#user_id = :user_id"),
		ExpressionAttributeNames: map[string]string{
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
	}
	if status != "" {
		input.FilterExpression = aws.String("#status = :status")
		input.ExpressionAttributeNames["#status"] = "status"
		input.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(status)}
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	var orders []entities.Order
	paginator := dynamodb.NewQueryPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
			if limit > 0 && int32(len(orders)) >= limit {
				return orders, nil
			}
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, trackingNumber string) (entities.Order, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if trackingNumber != "" {
			expr += ", #tracking_number = :tracking_number"
			vals[":tracking_number"] = &types.AttributeValueMemberS{Value: trackingNumber}
			names["#tracking_number"] = "tracking_number"
		}
		return expr, vals, names
	})
}

func (r *OrderDynamoRepository) UpdateDetails(ctx context.Context, id string, upd entities.OrderUpdate) (entities.Order, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}

		set := func(attr string, av types.AttributeValue) {
			expr += ", #" + attr + " = :" + attr
			vals[":"+attr] = av
			names["#"+attr] = attr
		}
		str := func(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

		if upd.PickupAddress != nil {
			set("pickup_address", str(*upd.PickupAddress))
		}
		if upd.DeliveryAddress != nil {
			set("delivery_address", str(*upd.DeliveryAddress))
		}
		if upd.PackageWeight != nil {
			set("package_weight", str(floatToString(*upd.PackageWeight)))
		}
		if upd.PackageLength != nil {
			set("package_length", str(floatToString(*upd.PackageLength)))
		}
		if upd.PackageWidth != nil {
			set("package_width", str(floatToString(*upd.PackageWidth)))
		}
		if upd.PackageHeight != nil {
			set("package_height", str(floatToString(*upd.PackageHeight)))
		}
		if upd.PackageDescription != nil {
			set("package_description", str(*upd.PackageDescription))
		}
		if upd.TransportMode != nil {
			set("transport_type", str(string(*upd.TransportMode)))
		}
		if upd.UrgentDelivery != nil {
			set("urgent_delivery", &types.AttributeValueMemberBOOL{Value: *upd.UrgentDelivery})
		}
		if upd.SpecialInstructions != nil {
			set("special_instructions", str(*upd.SpecialInstructions))
		}
		if upd.BaseCost != nil {
			set("base_cost", str(floatToString(*upd.BaseCost)))
		}
		if upd.UrgentSurcharge != nil {
			set("urgent_surcharge", str(floatToString(*upd.UrgentSurcharge)))
		}
		if upd.TotalCost != nil {
			set("total_cost", str(floatToString(*upd.TotalCost)))
		}

		return expr, vals, names
	})
}

func (r *OrderDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Order, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		UserID:              o.UserID,
		PickupAddress:       o.PickupAddress,
		DeliveryAddress:     o.DeliveryAddress,
		PackageWeight:       floatToString(o.PackageWeight),
		PackageDescription:  o.PackageDescription,
		TransportMode:       string(o.TransportMode),
		UrgentDelivery:      o.UrgentDelivery,
		SpecialInstructions: o.SpecialInstructions,
		BaseCost:            floatToString(o.BaseCost),
		UrgentSurcharge:     floatToString(o.UrgentSurcharge),
		TotalCost:           floatToString(o.TotalCost),
		Status:              string(o.Status),
		TrackingNumber:      o.TrackingNumber,
		CreatedAt:           o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if o.PackageLength > 0 {
		it.PackageLength = floatToString(o.PackageLength)
	}
	if o.PackageWidth > 0 {
		it.PackageWidth = floatToString(o.PackageWidth)
	}
	if o.PackageHeight > 0 {
		it.PackageHeight = floatToString(o.PackageHeight)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Order{
		ID:                  it.ID,
		OrderNumber:         it.OrderNumber,
		UserID:              it.UserID,
		PickupAddress:       it.PickupAddress,
		DeliveryAddress:     it.DeliveryAddress,
		PackageWeight:       parseFloat(it.PackageWeight),
		PackageLength:       parseFloat(it.PackageLength),
		PackageWidth:        parseFloat(it.PackageWidth),
		PackageHeight:       parseFloat(it.PackageHeight),
		PackageDescription:  it.PackageDescription,
		TransportMode:       entities.TransportMode(it.TransportMode),
		UrgentDelivery:      it.UrgentDelivery,
		SpecialInstructions: it.SpecialInstructions,
		BaseCost:            parseFloat(it.BaseCost),
		UrgentSurcharge:     parseFloat(it.UrgentSurcharge),
		TotalCost:           parseFloat(it.TotalCost),
		Status:              entities.OrderStatus(it.Status),
		TrackingNumber:      it.TrackingNumber,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
