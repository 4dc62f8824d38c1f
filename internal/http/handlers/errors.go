package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
)

// Persian fallbacks shown when the backend gives no message
const (
	msgSendOTPFailed   = "خطا در ارسال کد تایید"
	msgVerifyFailed    = "خطا در تایید کد"
	msgSignupFailed    = "خطا در ثبت نام"
	msgLogoutFailed    = "خطا در خروج از حساب"
	msgProductsFailed  = "خطا در دریافت محصولات"
	msgProductFailed   = "خطا در دریافت اطلاعات محصول"
	msgListFailed      = "خطا در دریافت اطلاعات"
	msgCartFailed      = "خطا در به‌روزرسانی سبد خرید"
	msgOrderFailed     = "خطا در ثبت سفارش"
	msgPaymentFailed   = "خطا در ایجاد پرداخت"
	msgOrdersFailed    = "خطا در دریافت سفارش‌ها"
	msgExportFailed    = "خطا در تهیه فایل سفارش‌ها"
	msgAddressFailed   = "خطا در ثبت آدرس"
	msgWholesaleFailed = "خطا در ثبت درخواست فروشنده عمده"
	msgBackendTimeout  = "پاسخی از سرور دریافت نشد، دوباره تلاش کنید"
	msgFlowNotFound    = "مهلت ورود به پایان رسیده است، دوباره شروع کنید"
	msgIllegalStep     = "این مرحله در حال حاضر مجاز نیست"
	msgInvalidBody     = "اطلاعات ارسال شده معتبر نیست"
	msgInvalidFilter   = "فیلترهای جستجو معتبر نیست"
)

var fieldMessages = map[error]string{
	domain.ErrPhoneTooShort:       "شماره موبایل باید حداقل ۱۱ رقم باشد",
	domain.ErrInvalidCode:         "کد تایید باید ۴ رقم باشد",
	domain.ErrFirstNameRequired:   "وارد کردن نام الزامی است",
	domain.ErrInvalidNationalCode: "کد ملی معتبر نیست",
	domain.ErrInvalidPostalCode:   "کد پستی باید ۱۰ رقم باشد",
	domain.ErrMissingField:        "تکمیل این فیلد الزامی است",
	domain.ErrInvalidQuantity:     "تعداد باید حداقل ۱ باشد",
}

// respondError maps err to a status and a Persian message. fallback is used
// for backend failures that carry no message of their own.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var (
		fieldErr *domain.FieldError
		waitErr  *domain.ResendWaitError
		apiErr   *domain.APIError
	)
	switch {
	case errors.As(err, &fieldErr):
		msg, ok := fieldMessages[fieldErr.Err]
		if !ok {
			msg = msgInvalidBody
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": fieldErr.Field})
	case errors.As(err, &waitErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     fmt.Sprintf("ارسال مجدد کد تا %d ثانیه دیگر ممکن است", waitErr.Remaining),
			"resend_in": waitErr.Remaining,
		})
	case errors.Is(err, domain.ErrInvalidProductFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidFilter})
	case errors.Is(err, domain.ErrFlowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgFlowNotFound})
	case errors.Is(err, domain.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": msgIllegalStep})
	case errors.Is(err, domain.ErrBackendTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": msgBackendTimeout})
	case errors.Is(err, domain.ErrPaymentFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": msgPaymentFailed})
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = apiErr.Status
		}
		c.JSON(status, gin.H{"error": domain.UserMessage(err, fallback)})
	case errors.Is(err, domain.ErrShortTermTokenEmpty):
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func respondBadBody(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
}
