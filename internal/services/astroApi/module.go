package astroApi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	astroApiAdapter "github.com/admin/astrografia/internal/adapters/secondary/astroApi"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/ephemeris"
	"github.com/admin/astrografia/internal/ports/service"
)

// часовой пояс Бразилиа, если запрос его не передал
const defaultTimezone = -3.0

var (
	// ErrIncomplete в ответе нет планет или асцендента
	ErrIncomplete = errors.New("astro API returned incomplete chart")
	// ErrMalformedBirth дата или время не в формате YYYY-MM-DD / HH:MM
	ErrMalformedBirth = errors.New("malformed birth date or time")
)

// Client то, что сервису нужно от адаптера
type Client interface {
	GetPlanets(ctx context.Context, req astroApiAdapter.PlanetsRequest) (*astroApiAdapter.PlanetsResponse, error)
	Language() string
}

// Service строит domain.Chart по ответу точного провайдера
type Service struct {
	client Client
}

func New(client Client) *Service {
	return &Service{client: client}
}

var _ service.IAstroAPIService = (*Service)(nil)

// GetChart любая ошибка возвращается как *domain.ProviderError
func (s *Service) GetChart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error) {
	chart, err := s.getChart(ctx, birth)
	if err != nil {
		return nil, &domain.ProviderError{
			Kind:   FailureKind(err),
			Reason: FallbackReason(err),
			Err:    err,
		}
	}
	return chart, nil
}

func (s *Service) getChart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error) {
	req, err := buildRequest(birth, s.client.Language())
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetPlanets(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get planets: %w", err)
	}
	if resp.Output == nil {
		return nil, fmt.Errorf("%w: no output", astroApiAdapter.ErrUnexpectedResponse)
	}

	chart := toChart(resp.Output)
	if len(chart.Planets) == 0 || chart.Ascendant == nil {
		return nil, ErrIncomplete
	}
	return chart, nil
}

func buildRequest(birth domain.BirthData, language string) (astroApiAdapter.PlanetsRequest, error) {
	if !birth.WellFormed() {
		return astroApiAdapter.PlanetsRequest{}, ErrMalformedBirth
	}

	dateParts := strings.Split(birth.Date, "-")
	timeParts := strings.Split(birth.Time, ":")
	if len(dateParts) < 3 || len(timeParts) < 2 {
		return astroApiAdapter.PlanetsRequest{}, ErrMalformedBirth
	}

	nums := make([]int, 0, 5)
	for _, part := range []string{dateParts[0], dateParts[1], dateParts[2], timeParts[0], timeParts[1]} {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return astroApiAdapter.PlanetsRequest{}, fmt.Errorf("%w: %q", ErrMalformedBirth, part)
		}
		nums = append(nums, n)
	}

	tz := defaultTimezone
	if birth.Timezone != nil {
		tz = *birth.Timezone
	}

	return astroApiAdapter.PlanetsRequest{
		Year:      nums[0],
		Month:     nums[1],
		Date:      nums[2],
		Hours:     nums[3],
		Minutes:   nums[4],
		Latitude:  birth.Latitude,
		Longitude: birth.Longitude,
		Timezone:  tz,
		Config: astroApiAdapter.ObservationConfig{
			ObservationPoint: "topocentric",
			Ayanamsha:        "tropical",
			Language:         language,
		},
	}, nil
}

// toChart оставляет только известные тела; узлы, Хирон и прочие точки отбрасываются
func toChart(items []astroApiAdapter.PlanetItem) *domain.Chart {
	chart := &domain.Chart{
		Planets: []domain.Planet{},
		Source:  domain.ChartSourceAPI,
	}

	for _, item := range items {
		if item.Name() == "Ascendant" {
			chart.Ascendant = &domain.Ascendant{
				Sign:   signPT(item.Sign()),
				Degree: item.NormDegree,
			}
			continue
		}

		body, ok := ephemeris.LookupBody(item.Name())
		if !ok || body.Name != item.Name() {
			continue
		}
		chart.Planets = append(chart.Planets, domain.Planet{
			Name:       body.NamePT,
			Sign:       signPT(item.Sign()),
			SignDegree: item.NormDegree,
			Degree:     item.FullDegree,
			Icon:       body.Icon,
		})
	}

	return chart
}

func signPT(en string) string {
	if sign, ok := ephemeris.ParseSign(en); ok {
		return sign.Portuguese()
	}
	return en
}

// FallbackReason текст причины перехода на приближённый расчёт
func FallbackReason(err error) string {
	var statusErr *astroApiAdapter.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedBirth):
		return "Data ou hora ausentes/invalidas"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("API respondeu %d", statusErr.StatusCode)
	case errors.Is(err, ErrIncomplete):
		return "API retornou sem dados suficientes"
	case errors.Is(err, astroApiAdapter.ErrUnexpectedResponse):
		return "Resposta inesperada da API"
	default:
		return "Erro ao contatar API externa"
	}
}

// FailureKind короткая метка ошибки для метрик
func FailureKind(err error) string {
	var statusErr *astroApiAdapter.StatusError
	switch {
	case errors.Is(err, ErrMalformedBirth):
		return "invalid_input"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, ErrIncomplete):
		return "incomplete"
	case errors.Is(err, astroApiAdapter.ErrUnexpectedResponse):
		return "unexpected"
	default:
		return "transport"
	}
}
