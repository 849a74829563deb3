// file: internals/features/finance/charges/scheduler/billing_scheduler.go
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "educenter_backend/internals/features/finance/charges/model"
	repository "educenter_backend/internals/features/finance/charges/repository"
	service "educenter_backend/internals/features/finance/charges/service"
	notifsvc "educenter_backend/internals/features/notifications/service"
)

// StartBillingScheduler menjalankan ChargeBatch harian untuk semua grup
// aktif di semua sekolah, bulan berjalan. Aman dijalankan berulang:
// siswa yang sudah tertagih jatuh ke AlreadyCharged, yang kurang saldo
// dicoba lagi besok setelah (mungkin) top-up.
func StartBillingScheduler(db *gorm.DB) {
	go func() {
		processor := service.NewChargeProcessor(
			repository.NewGormChargeStore(db),
			notifsvc.NewLogNotifier(db),
		)

		for {
			log.Println("[BILLING] Menjalankan batch tagihan harian...")
			runOnce(db, processor)

			// Jalankan tiap 24 jam
			time.Sleep(24 * time.Hour)
		}
	}()
}

func runOnce(db *gorm.DB, processor *service.ChargeProcessor) {
	now := time.Now()
	month := int16(now.Month())
	year := int16(now.Year())

	var groups []model.GroupModel
	if err := db.
		Where("group_is_active = TRUE").
		Find(&groups).Error; err != nil {
		log.Printf("[BILLING ERROR] Gagal ambil daftar grup: %v", err)
		return
	}

	ctx := context.Background()
	perSchool := map[uuid.UUID]int{}
	for _, g := range groups {
		agg, err := processor.ChargeBatch(ctx, g.GroupSchoolID, g.GroupID, month, year)
		if err != nil {
			log.Printf("[BILLING ERROR] Batch grup %s gagal: %v", g.GroupID, err)
			continue
		}
		perSchool[g.GroupSchoolID] += agg.Charged
		if agg.InsufficientFunds > 0 {
			log.Printf("[BILLING] Grup %s: %d siswa kurang saldo", g.GroupID, agg.InsufficientFunds)
		}
	}
	log.Printf("[BILLING] Batch harian selesai: %d grup diproses, %d sekolah tersentuh",
		len(groups), len(perSchool))
}
