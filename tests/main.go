// Command tests posts simulated bookings to a running server through the
// client orchestrator and prints the outcome with the fallback links.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"safaricamp/client"
	"safaricamp/models"
	"safaricamp/services/booking"
	"safaricamp/services/contact"
)

var camps = []models.Location{
	{Name: "Mara River Camp", Address: "Maasai Mara, Kenya", PricePerNight: 700},
	{Name: "Amboseli Springs", Address: "Amboseli, Kenya", PricePerNight: 560},
	{Name: "Samburu Ridge", Address: "Samburu, Kenya", PricePerNight: 480},
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf(".env load warning: %v", err)
	}
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("BOOKING_API_URL", "http://localhost:8080")
	v.SetDefault("SIMULATED_BOOKINGS", 3)
	v.SetDefault("GUEST_EMAIL", "guest@example.com")
	v.SetDefault("SUPPORT_EMAIL", "")
	v.SetDefault("WHATSAPP_NUMBER", "")
	v.SetDefault("EXTRA_GUEST_RATE", 325.0)
	v.SetDefault("DISCOUNT_PER_GUEST_NIGHT", 25.0)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	handles := contact.Handles{
		SupportEmail:   v.GetString("SUPPORT_EMAIL"),
		WhatsAppNumber: v.GetString("WHATSAPP_NUMBER"),
	}
	policy := booking.PricingPolicy{
		ExtraGuestRate:        v.GetFloat64("EXTRA_GUEST_RATE"),
		DiscountPerGuestNight: v.GetFloat64("DISCOUNT_PER_GUEST_NIGHT"),
	}
	submitter := client.NewHTTPSubmitter(v.GetString("BOOKING_API_URL"), 30*time.Second)

	for i := 0; i < v.GetInt("SIMULATED_BOOKINGS"); i++ {
		form := simulatedForm(v.GetString("GUEST_EMAIL"), i)
		o := client.NewOrchestrator(submitter, handles, policy)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		resp, err := o.Submit(ctx, form)
		cancel()

		fields := []zap.Field{
			zap.String("bookingId", o.BookingID()),
			zap.String("camp", form.Location.Name),
			zap.Int("groupSize", form.GroupSize),
			zap.String("state", string(o.State())),
		}
		if resp != nil && resp.EmailStatus != nil {
			fields = append(fields, zap.Any("emailStatus", resp.EmailStatus))
		}
		if err != nil {
			logger.Warn("Booking not accepted", append(fields, zap.Error(err))...)
		} else {
			logger.Info("Booking accepted", fields...)
		}

		// Links are only available once the attempt has settled.
		if mailto, err := o.MailtoLink(); err == nil {
			fmt.Printf("  email draft: %s\n", mailto)
		}
		if chat, err := o.WhatsAppLink(); err == nil && handles.WhatsAppNumber != "" {
			fmt.Printf("  whatsapp:    %s\n", chat)
		}
	}
}

// simulatedForm builds a plausible booking a few weeks out.
func simulatedForm(email string, n int) models.BookingRequest {
	nights := rand.IntN(5) + 1
	checkIn := time.Now().AddDate(0, 0, 14+rand.IntN(60))
	return models.BookingRequest{
		FirstName:         "Test",
		LastName:          fmt.Sprintf("Guest %d", n+1),
		Email:             email,
		Phone:             "+254 700 000 000",
		CheckIn:           checkIn.Format("2006-01-02"),
		CheckOut:          checkIn.AddDate(0, 0, nights).Format("2006-01-02"),
		GroupSize:         rand.IntN(5) + 2,
		AccommodationType: models.AccommodationTypes[rand.IntN(len(models.AccommodationTypes))],
		MealPlan:          models.MealPlans[rand.IntN(len(models.MealPlans))],
		Location:          camps[n%len(camps)],
		SpecialRequests:   "Simulated booking, please ignore.",
	}
}
