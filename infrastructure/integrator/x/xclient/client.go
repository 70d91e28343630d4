package xclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	xdomain "github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/domain"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const tweetFields = "public_metrics,author_id,text,created_at"

type Client interface {
	GetUserTweets(ctx context.Context, params UserTweetsParams) (*xdomain.TweetsResponse, error)
	GetTweetsByIDs(ctx context.Context, ids []string) (*xdomain.TweetsResponse, error)
}

type XClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retry      utils.RetryOptions
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.X.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	maxRetries := cfg.X.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &XClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.X.BaseURL, "/"),
		token:   cfg.X.BearerToken,
		retry: utils.RetryOptions{
			MaxElapsedTime:  timeout,
			InitialInterval: 250 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			MaxRetries:      uint64(maxRetries),
		},
	}
}

// get executa um GET autenticado. Erros de transporte e respostas 5xx são
// repetidos com backoff; os demais status falham imediatamente.
func (c *XClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := utils.WithRetry(ctx, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, utils.Permanent(errors.Wrap(err, "erro ao criar a requisição"))
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, utils.Permanent(errors.Wrap(err, "requisição cancelada"))
			}
			return nil, errors.Wrap(err, "erro ao executar a requisição")
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler resposta")
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &xdomain.APIError{StatusCode: resp.StatusCode}
			_ = json.Unmarshal(data, &apiErr.Problem)
			if apiErr.IsRetryable() {
				return nil, apiErr
			}
			return nil, utils.Permanent(apiErr)
		}

		return data, nil
	}, c.retry)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return nil
}
