package windows

import "tedit/logging"

var logger = logging.NewLogger()
