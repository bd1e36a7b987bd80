package jobs

import (
	"context"
	"time"

	"hotel/services/logger"

	"github.com/robfig/cron/v3"
)

// DueReservationCompleter hoàn thành các reservation đã tới ngày trả phòng
type DueReservationCompleter interface {
	CompleteDueReservations(ctx context.Context, now time.Time) (int, error)
}

// CheckoutSweep trả về hàm chạy một lượt hoàn thành reservation đến hạn.
func CheckoutSweep(completer DueReservationCompleter, log logger.Logger, now func() time.Time) func() {
	return func() {
		at := now()
		log.Info("Đang chạy hoàn thành reservation đến hạn lúc: %v", at)
		n, err := completer.CompleteDueReservations(context.Background(), at)
		if err != nil {
			log.Error("Lỗi khi hoàn thành reservation đến hạn: %v", err)
		}
		log.Info("Đã hoàn thành %d reservation", n)
	}
}

// InitCronJobs khởi tạo các cron jobs. schedule rỗng thì không đăng ký gì.
func InitCronJobs(c *cron.Cron, schedule string, completer DueReservationCompleter, log logger.Logger) error {
	if schedule == "" {
		log.Info("Checkout cron disabled")
		return nil
	}

	if _, err := c.AddFunc(schedule, CheckoutSweep(completer, log, time.Now)); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
