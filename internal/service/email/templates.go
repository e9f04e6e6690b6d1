package email

// Email templates using HTML

const reservationConfirmedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background: #16a34a;
            color: white;
            padding: 30px;
            text-align: center;
            border-radius: 10px 10px 0 0;
        }
        .content {
            background: #ffffff;
            padding: 30px;
            border: 1px solid #e5e7eb;
            border-top: none;
        }
        .info-box {
            background: #f3f4f6;
            padding: 15px;
            border-radius: 6px;
            margin: 15px 0;
        }
        .footer {
            padding: 20px;
            text-align: center;
            font-size: 12px;
            color: #6b7280;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Reservation Confirmed</h1>
    </div>
    <div class="content">
        <p>Your charging outlet is booked.</p>
        <div class="info-box">
            <p><strong>Reservation:</strong> {{.ReservationID}}</p>
            <p><strong>Station:</strong> {{.StationID}}</p>
            <p><strong>From:</strong> {{.StartTime}}</p>
            <p><strong>Until:</strong> {{.EndTime}}</p>
            <p><strong>Reservation fee charged:</strong> &euro;{{.Fee}}</p>
        </div>
        <p>The fee has been deducted from your wallet and counts toward the final session cost.</p>
    </div>
    <div class="footer">
        <p>EVSync &middot; <a href="{{.BaseURL}}">{{.BaseURL}}</a></p>
    </div>
</body>
</html>
`

const sessionCompletedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background: #2563eb;
            color: white;
            padding: 30px;
            text-align: center;
            border-radius: 10px 10px 0 0;
        }
        .content {
            background: #ffffff;
            padding: 30px;
            border: 1px solid #e5e7eb;
            border-top: none;
        }
        .info-box {
            background: #f3f4f6;
            padding: 15px;
            border-radius: 6px;
            margin: 15px 0;
        }
        .footer {
            padding: 20px;
            text-align: center;
            font-size: 12px;
            color: #6b7280;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Charging Session Completed</h1>
    </div>
    <div class="content">
        <p>Thanks for charging with us. Here is your session summary.</p>
        <div class="info-box">
            <p><strong>Session:</strong> {{.SessionID}}</p>
            <p><strong>Started:</strong> {{.StartTime}}</p>
            <p><strong>Ended:</strong> {{.EndTime}}</p>
            <p><strong>Energy delivered:</strong> {{.EnergyKWh}} kWh</p>
            <p><strong>Total cost:</strong> &euro;{{.TotalCost}}</p>
        </div>
        <p>The remaining balance was settled from your wallet.</p>
    </div>
    <div class="footer">
        <p>EVSync &middot; <a href="{{.BaseURL}}">{{.BaseURL}}</a></p>
    </div>
</body>
</html>
`
