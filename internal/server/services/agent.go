package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pagescout/internal/common"
	sc "github.com/dmitrijs2005/pagescout/internal/server/config"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ImageUploadTTL is how long a presigned agent image upload URL stays valid.
const ImageUploadTTL = 15 * time.Minute

// Test seams around the AWS SDK.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload is a one-off URL a client can PUT an agent image to.
type ImageUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"upload_url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AgentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewAgentService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AgentService {
	return &AgentService{db: db, repomanager: m, config: cfg, now: time.Now}
}

func (s *AgentService) List(ctx context.Context) ([]models.Agent, error) {
	list, err := s.repomanager.Agents(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list agents: %w", common.ErrInternal, err)
	}
	return list, nil
}

// Create stores an agent. agentName and prompt are required; an empty
// imageURL falls back to common.DefaultAgentImageURL.
func (s *AgentService) Create(ctx context.Context, agentName, prompt, imageURL string) (*models.Agent, error) {
	agentName = strings.TrimSpace(agentName)
	if agentName == "" || strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: agent_name and prompt are required", common.ErrInvalidInput)
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		imageURL = common.DefaultAgentImageURL
	}

	agent, err := s.repomanager.Agents(s.db).Create(ctx, &models.Agent{
		AgentName: agentName,
		Prompt:    prompt,
		ImageURL:  imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", common.ErrInternal, err)
	}
	return agent, nil
}

// imageStorageKey returns a fresh object key partitioned by upload date.
func (s *AgentService) imageStorageKey() string {
	d := s.now().UTC()
	return fmt.Sprintf("agents/%04d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.NewString())
}

func (s *AgentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return newS3PresignClient(client), nil
}

// PresignImageUpload returns a presigned PUT URL for a new agent image. The
// object key can be stored as the agent's image_url once the upload is done.
func (s *AgentService) PresignImageUpload(ctx context.Context) (*ImageUpload, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 client: %w", common.ErrInternal, err)
	}

	bucket := s.config.S3Bucket
	key := s.imageStorageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ImageUploadTTL))
	if err != nil {
		return nil, fmt.Errorf("%w: presign put: %w", common.ErrInternal, err)
	}

	return &ImageUpload{
		Key:       key,
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: s.now().Add(ImageUploadTTL),
	}, nil
}
