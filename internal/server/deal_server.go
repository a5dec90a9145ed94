package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"p2p_market/internal/domain/entity"
	service "p2p_market/internal/domain/service/deal"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
	"p2p_market/pkg/httpx/reply"
	"p2p_market/pkg/httpx/req"
	"p2p_market/pkg/rest"
)

type dealService interface {
	Create(ctx context.Context, listingID, buyerID int64, usdtAmount float64) (*entity.Deal, error)
	ConfirmPayment(ctx context.Context, code value.TradeCode) (*entity.Deal, error)
	ReleaseFunds(ctx context.Context, code value.TradeCode, secret string) (*service.ReleaseReceipt, error)
	Get(ctx context.Context, code value.TradeCode) (*entity.Deal, error)
	Logs(ctx context.Context, code value.TradeCode) ([]entity.LogEntry, error)
	List(ctx context.Context, limit, offset int) ([]entity.Deal, error)
	ListPending(ctx context.Context, limit, offset int) ([]entity.Deal, error)
	Info() (escrowWallet string, commissionPercent float64)
}

type DealServer struct {
	dealService dealService
	appName     string
	appVersion  string
}

func NewDealServer(dealService dealService, appName, appVersion string) DealServer {
	return DealServer{
		dealService: dealService,
		appName:     appName,
		appVersion:  appVersion,
	}
}

func (s DealServer) getV1Info(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	escrowWallet, commissionPercent := s.dealService.Info()

	reply.JSON(ctx, w, http.StatusOK, rest.ServiceInfo{
		Name:              s.appName,
		Version:           s.appVersion,
		EscrowWallet:      escrowWallet,
		CommissionPercent: commissionPercent,
	})

	return nil
}

func (s DealServer) postV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateDealRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := s.dealService.Create(ctx, request.ListingID, request.BuyerID, request.USDTAmount)
	if err != nil {
		return fmt.Errorf("dealService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTDeal(*deal))

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	code, err := tradeCodeFromPath(r)
	if err != nil {
		return err
	}

	deal, err := s.dealService.Get(ctx, code)
	if err != nil {
		return fmt.Errorf("dealService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(*deal))

	return nil
}

func (s DealServer) getV1DealLogs(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	code, err := tradeCodeFromPath(r)
	if err != nil {
		return err
	}

	logs, err := s.dealService.Logs(ctx, code)
	if err != nil {
		return fmt.Errorf("dealService.Logs: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLogEntries(logs))

	return nil
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return fmt.Errorf("paging: %w", err)
	}

	deals, err := s.dealService.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("dealService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeals(deals))

	return nil
}

func (s DealServer) postV1ConfirmPayment(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ConfirmPaymentRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	code, err := parseTradeCode(request.TradeCode)
	if err != nil {
		return err
	}

	deal, err := s.dealService.ConfirmPayment(ctx, code)
	if err != nil {
		return fmt.Errorf("dealService.ConfirmPayment: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ConfirmPaymentResponse{
		Message:   "Payment confirmed successfully",
		TradeCode: deal.TradeCode.String(),
	})

	return nil
}

func (s DealServer) postV1ReleaseFunds(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ReleaseFundsRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	code, err := parseTradeCode(request.TradeCode)
	if err != nil {
		return err
	}

	receipt, err := s.dealService.ReleaseFunds(ctx, code, request.Secret)
	if err != nil {
		return fmt.Errorf("dealService.ReleaseFunds: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ReleaseFundsResponse{
		Message:        "Funds released successfully",
		TradeCode:      receipt.TradeCode.String(),
		AmountReleased: receipt.AmountReleased,
		Commission:     receipt.Commission,
	})

	return nil
}

func (s DealServer) getV1PendingDeals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return fmt.Errorf("paging: %w", err)
	}

	deals, err := s.dealService.ListPending(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("dealService.ListPending: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeals(deals))

	return nil
}

func tradeCodeFromPath(r *http.Request) (value.TradeCode, error) {
	return parseTradeCode(r.PathValue("tradeCode"))
}

func parseTradeCode(raw string) (value.TradeCode, error) {
	code, err := value.ParseTradeCode(raw)
	if err != nil {
		return "", failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseTradeCode: %w", err),
			failure.WithCode(errcodes.InvalidTradeCode),
		)
	}

	return code, nil
}
