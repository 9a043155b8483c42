package notification

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"datekeeper/models"
)

func smsBody(documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int) string {
	return fmt.Sprintf("DateKeeper: your %s %q expires on %s (%d days left). Renew it soon.",
		documentType, documentName, expiryDate.Format("2006-01-02"), daysRemaining)
}

// sendTwilio posts a message to the Twilio REST API.
func (d *DefaultDispatcher) sendTwilio(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int) error {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", d.twilioSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", d.twilioFrom)
	form.Set("Body", smsBody(documentName, documentType, expiryDate, daysRemaining))

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build Twilio request: %w", err)
	}
	req.SetBasicAuth(d.twilioSID, d.twilioToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}
