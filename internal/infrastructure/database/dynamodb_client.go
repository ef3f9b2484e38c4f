package database

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB builds the DynamoDB client backing the payment-record audit
// table from environment variables:
//   - AWS_REGION (default: sa-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional, points at a local DynamoDB for dev)
func ConnectDynamoDB() *dynamodb.Client {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		log.Fatalf("[database][dynamodb] failed to load aws config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(getenvDefault("AWS_REGION", "sa-east-1")),
		// Local DynamoDB ignores credentials but the SDK insists on having some.
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			"",
		)),
	}

	if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		opts = append(opts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
